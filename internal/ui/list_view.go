package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lawrnfy/TaskForge/internal/util"
	"github.com/lawrnfy/TaskForge/internal/utils"
	"github.com/lawrnfy/TaskForge/models"
)

// importanceIcon maps a task's importance to a marker for compact lists.
func importanceIcon(importance int) string {
	switch {
	case importance >= 5:
		return StyleError.Render("‼")
	case importance >= 3:
		return StyleWarning.Render("!")
	default:
		return StyleSubtle.Render("·")
	}
}

// RenderTaskList renders tasks to stdout in compact mode, most important
// first. For full metadata use RenderTaskListVerbose.
func RenderTaskList(tasks []models.Task, reminders map[string]models.ReminderState) {
	renderTaskListInternal(tasks, reminders, false)
}

// RenderTaskListVerbose renders tasks with IDs, effort, and reminder state.
func RenderTaskListVerbose(tasks []models.Task, reminders map[string]models.ReminderState) {
	renderTaskListInternal(tasks, reminders, true)
}

func renderTaskListInternal(tasks []models.Task, reminders map[string]models.ReminderState, verbose bool) {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Importance > sorted[j].Importance
	})

	nagging := 0
	for _, r := range reminders {
		if r.SentToday > 0 {
			nagging++
		}
	}

	fmt.Printf(" 📋 Tasks: %d (%d nagged today)\n", len(sorted), nagging)
	fmt.Println(StyleSubtle.Render(strings.Repeat("─", 50)))

	if len(sorted) == 0 {
		return
	}

	if verbose {
		table := &Table{
			Headers:  []string{"ID", "Title", "Imp", "Effort", "Nag Level", "Sent Today"},
			MaxWidth: 40,
		}
		for _, t := range sorted {
			rem := reminders[t.ID]
			table.Rows = append(table.Rows, []string{
				util.ShortID(t.ID, 0),
				t.Title,
				fmt.Sprintf("%d", t.Importance),
				fmt.Sprintf("%dm", t.EffortMin),
				fmt.Sprintf("%d", rem.Level),
				fmt.Sprintf("%d", rem.SentToday),
			})
		}
		fmt.Print(table.Render())
		return
	}

	for _, t := range sorted {
		line := fmt.Sprintf(" %s %s", importanceIcon(t.Importance), StyleTitle.Render(t.Title))
		if t.Notes != "" {
			line += " " + StyleSubtle.Render(utils.Truncate(t.Notes, 40))
		}
		fmt.Println(line)
	}
}

// RenderStats prints the credit and streak summary.
func RenderStats(stats models.Stats) {
	fmt.Println(StyleHeader.Render("🔥 Focus stats"))
	fmt.Printf(" Credits this month: %s\n", StyleSuccess.Render(fmt.Sprintf("%d", stats.CreditsThisMonth)))
	fmt.Printf(" Streak: %s\n", StyleTitle.Render(fmt.Sprintf("%d days", stats.StreakDays)))
	if stats.LastPomodoroDate != "" {
		fmt.Printf(" Last completed session: %s\n", StyleSubtle.Render(stats.LastPomodoroDate))
	}
}
