package models

import "time"

// Stats is the gamified credit/streak ledger. Dates are YYYY-MM-DD and
// months YYYY-MM, both in UTC, so calendar comparisons are plain string
// equality.
type Stats struct {
	CreditsThisMonth     int    `json:"creditsThisMonth"`
	StreakDays           int    `json:"streakDays"`
	LastPomodoroDate     string `json:"lastPomodoroDate"`
	LastCreditResetMonth string `json:"lastCreditResetMonth"`
}

// NewStats seeds the ledger with the current month so the first maintenance
// pass does not immediately zero it.
func NewStats(now time.Time) Stats {
	return Stats{LastCreditResetMonth: MonthOf(now)}
}

// DateOf formats t as a UTC calendar date (YYYY-MM-DD).
func DateOf(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// MonthOf formats t as a UTC calendar month (YYYY-MM).
func MonthOf(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// DayBefore returns the calendar date 24 hours before t. Streak continuity
// is judged against this.
func DayBefore(t time.Time) string {
	return DateOf(t.Add(-24 * time.Hour))
}
