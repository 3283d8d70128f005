package models

// Accent themes understood by display surfaces.
const (
	AccentBlue   = "blue"
	AccentGreen  = "green"
	AccentOrange = "orange"
)

// DefaultDailyEscalationCap bounds reminder notifications per task per day.
const DefaultDailyEscalationCap = 6

// Settings is user configuration read by the core. It lives in the state
// document so UI surfaces can patch it through the command protocol.
type Settings struct {
	Accent             string   `json:"accent" validate:"omitempty,oneof=blue green orange"`
	WorkMin            int      `json:"workMin" validate:"min=1"`
	BreakMin           int      `json:"breakMin" validate:"min=1"`
	BlockedSites       []string `json:"blockedSites"`
	SiteBlockEnabled   bool     `json:"siteBlockEnabled"`
	DailyEscalationCap int      `json:"dailyEscalationCap" validate:"min=1"`
}

// DefaultSettings mirrors the install-time defaults.
func DefaultSettings() Settings {
	return Settings{
		Accent:             AccentBlue,
		WorkMin:            25,
		BreakMin:           5,
		BlockedSites:       []string{"youtube.com", "twitter.com", "reddit.com"},
		SiteBlockEnabled:   true,
		DailyEscalationCap: DefaultDailyEscalationCap,
	}
}

// SettingsPatch carries a partial settings update; nil fields are left
// untouched when merged.
type SettingsPatch struct {
	Accent             *string   `json:"accent,omitempty"`
	WorkMin            *int      `json:"workMin,omitempty"`
	BreakMin           *int      `json:"breakMin,omitempty"`
	BlockedSites       *[]string `json:"blockedSites,omitempty"`
	SiteBlockEnabled   *bool     `json:"siteBlockEnabled,omitempty"`
	DailyEscalationCap *int      `json:"dailyEscalationCap,omitempty"`
}

// Apply merges the patch onto s.
func (p SettingsPatch) Apply(s *Settings) {
	if p.Accent != nil {
		s.Accent = *p.Accent
	}
	if p.WorkMin != nil && *p.WorkMin > 0 {
		s.WorkMin = *p.WorkMin
	}
	if p.BreakMin != nil && *p.BreakMin > 0 {
		s.BreakMin = *p.BreakMin
	}
	if p.BlockedSites != nil {
		s.BlockedSites = *p.BlockedSites
	}
	if p.SiteBlockEnabled != nil {
		s.SiteBlockEnabled = *p.SiteBlockEnabled
	}
	if p.DailyEscalationCap != nil && *p.DailyEscalationCap > 0 {
		s.DailyEscalationCap = *p.DailyEscalationCap
	}
}
