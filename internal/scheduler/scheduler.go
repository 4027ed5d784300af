package scheduler

import (
	"sort"
	"time"

	"github.com/julianstephens/daychain/internal/constants"
	"github.com/julianstephens/daychain/internal/models"
)

// Window is the effective interval of a block, in minutes from midnight.
// A block owns [Start, End).
type Window struct {
	Block models.TimeBlock
	Start int
	End   int
}

// Status describes where a clock reading falls in a routine.
type Status struct {
	// Active is nil when no block covers the reading.
	Active *models.TimeBlock
	// Index of the active block in the sorted sequence, or -1.
	Index int
	// Window of the active block. Zero when nothing is active.
	Window Window
	// Next is the block that starts at the next boundary, if any.
	Next *models.TimeBlock
	// UntilNext is the time remaining to the next boundary (end of the active
	// block, or start of the first block before the day begins). Zero after
	// the last block has ended.
	UntilNext time.Duration
}

// SortBlocks returns a copy of blocks ordered by start time. Blocks that share
// a time keep their original relative order.
func SortBlocks(blocks []models.TimeBlock) []models.TimeBlock {
	sorted := make([]models.TimeBlock, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Minutes() < sorted[j].Time.Minutes()
	})
	return sorted
}

// IsSorted reports whether blocks are in non-decreasing time order.
func IsSorted(blocks []models.TimeBlock) bool {
	for i := 1; i < len(blocks); i++ {
		if blocks[i].Time.Before(blocks[i-1].Time) {
			return false
		}
	}
	return true
}

// Windows computes the effective interval of every block. Each block ends where
// its successor starts; the last block runs for the default duration, clamped
// to the end of the same day.
func Windows(blocks []models.TimeBlock) []Window {
	sorted := SortBlocks(blocks)
	windows := make([]Window, len(sorted))
	for i, b := range sorted {
		start := b.Time.Minutes()
		end := start + constants.DefaultBlockDurationMin
		if i < len(sorted)-1 {
			end = sorted[i+1].Time.Minutes()
		}
		if end > constants.MinutesPerDay {
			end = constants.MinutesPerDay
		}
		windows[i] = Window{Block: b, Start: start, End: end}
	}
	return windows
}

// ResolveActive returns the block active at now, or nil.
func ResolveActive(blocks []models.TimeBlock, now models.Clock) *models.TimeBlock {
	for _, w := range Windows(blocks) {
		if w.Start <= now.Minutes() && now.Minutes() < w.End {
			b := w.Block
			return &b
		}
	}
	return nil
}

// Resolve is ResolveActive plus the next boundary, with second precision for
// the countdown.
func Resolve(blocks []models.TimeBlock, now time.Time) Status {
	status := Status{Index: -1}
	windows := Windows(blocks)
	if len(windows) == 0 {
		return status
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	secondOfDay := time.Duration(now.Hour())*time.Hour +
		time.Duration(now.Minute())*time.Minute +
		time.Duration(now.Second())*time.Second
	until := func(minutes int) time.Duration {
		return time.Duration(minutes)*time.Minute - secondOfDay
	}

	if nowMinutes < windows[0].Start {
		first := windows[0].Block
		status.Next = &first
		status.UntilNext = until(windows[0].Start)
		return status
	}

	for i, w := range windows {
		if w.Start <= nowMinutes && nowMinutes < w.End {
			active := w.Block
			status.Active = &active
			status.Index = i
			status.Window = w
			status.UntilNext = until(w.End)
			if i < len(windows)-1 {
				next := windows[i+1].Block
				status.Next = &next
			}
			return status
		}
	}

	return status
}

// FormatMinutes renders minutes from midnight as HH:MM. 1440 renders as 24:00.
func FormatMinutes(minutes int) string {
	if minutes == constants.MinutesPerDay {
		return "24:00"
	}
	return models.ClockFromMinutes(minutes).String()
}
