package cli

import (
	"fmt"
	"time"

	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"github.com/julianstephens/daychain/internal/models"
	"github.com/julianstephens/daychain/internal/scheduler"
)

func statusMark(s models.BlockStatus) string {
	switch s {
	case models.StatusCompleted:
		return "✓"
	case models.StatusCanceled:
		return "✗"
	default:
		return " "
	}
}

// activityWidth is the column the activity is cut and padded to, in cells.
const activityWidth = 40

// FormatWindow renders one line of a routine listing.
func FormatWindow(w scheduler.Window, active, showIDs bool) string {
	cursor := " "
	if active {
		cursor = "▶"
	}
	activity := padding.String(truncate.StringWithTail(w.Block.Activity, activityWidth, "…"), activityWidth)
	line := fmt.Sprintf("%s %s %s–%s  %s [%s]",
		cursor, statusMark(w.Block.Status),
		scheduler.FormatMinutes(w.Start), scheduler.FormatMinutes(w.End),
		activity, w.Block.Category)
	if w.Block.AlarmEnabled {
		line += " ⏰"
	}
	if w.Block.IsExtra {
		line += " (extra)"
	}
	if showIDs {
		line += fmt.Sprintf("  (ID: %s)", ShortID(w.Block.ID))
	}
	return line
}

// PrintRoutine lists the blocks of r, marking the one active at now.
func PrintRoutine(r models.Routine, now time.Time, showIDs bool) {
	fmt.Printf("%s (%s)\n", r.Name, r.ID)
	if r.Description != "" {
		fmt.Printf("  %s\n", r.Description)
	}
	if len(r.Blocks) == 0 {
		fmt.Println("  No blocks.")
		return
	}
	status := scheduler.Resolve(r.Blocks, now)
	for i, w := range scheduler.Windows(r.Blocks) {
		fmt.Println("  " + FormatWindow(w, i == status.Index, showIDs))
	}
}

// FormatDuration renders d as "1h05m" or "12m", rounded up to the minute.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}
	minutes := int((d + time.Minute - 1) / time.Minute)
	if minutes >= 60 {
		return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
