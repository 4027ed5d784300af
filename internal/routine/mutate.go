// Package routine holds the pure mutators for routines and the routine catalog.
// Every function returns a new value and leaves its input untouched.
package routine

import (
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/daychain/internal/constants"
	"github.com/julianstephens/daychain/internal/models"
	"github.com/julianstephens/daychain/internal/scheduler"
)

// BlockFields are the caller-supplied fields of a new block. Zero values fall
// back to defaults.
type BlockFields struct {
	Time         *models.Clock
	Activity     string
	Category     models.Category
	AlarmEnabled bool
	IsExtra      bool
}

// Patch lists the fields to overwrite on an existing block. Nil fields are left alone.
type Patch struct {
	Time         *models.Clock
	Activity     *string
	Category     *models.Category
	Status       *models.BlockStatus
	AlarmEnabled *bool
}

// newID is swapped in tests to get deterministic ids.
var newID = func() string {
	return uuid.New().String()
}

// Normalize returns a copy of r with blocks in chronological order.
func Normalize(r models.Routine) models.Routine {
	out := r.Clone()
	out.Blocks = scheduler.SortBlocks(out.Blocks)
	return out
}

// AddBlock inserts a new pending block with a fresh id and re-sorts.
func AddBlock(r models.Routine, fields BlockFields) models.Routine {
	at := models.MustClock(constants.DefaultBlockTime)
	if fields.Time != nil {
		at = *fields.Time
	}
	activity := strings.TrimSpace(fields.Activity)
	if activity == "" {
		activity = constants.DefaultBlockActivity
	}
	category, err := models.ParseCategory(string(fields.Category))
	if err != nil {
		category = models.CategoryPersonal
	}

	out := r.Clone()
	out.Blocks = append(out.Blocks, models.TimeBlock{
		ID:           newID(),
		Time:         at,
		Activity:     activity,
		Category:     category,
		Status:       models.StatusPending,
		AlarmEnabled: fields.AlarmEnabled,
		IsExtra:      fields.IsExtra,
	})
	out.Blocks = scheduler.SortBlocks(out.Blocks)
	return out
}

// AddExtraBlock inserts an ad-hoc work block starting at now.
func AddExtraBlock(r models.Routine, activity string, now models.Clock) models.Routine {
	return AddBlock(r, BlockFields{
		Time:     &now,
		Activity: activity,
		Category: models.CategoryWork,
		IsExtra:  true,
	})
}

// UpdateBlock merges patch into the block with the given id. An unknown id is a no-op.
func UpdateBlock(r models.Routine, id string, patch Patch) models.Routine {
	out := r.Clone()
	idx := indexOf(out, id)
	if idx < 0 {
		return out
	}

	b := &out.Blocks[idx]
	if patch.Activity != nil {
		b.Activity = *patch.Activity
	}
	if patch.Category != nil {
		if c, err := models.ParseCategory(string(*patch.Category)); err == nil {
			b.Category = c
		}
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}
	if patch.AlarmEnabled != nil {
		b.AlarmEnabled = *patch.AlarmEnabled
	}
	if patch.Time != nil {
		b.Time = *patch.Time
		out.Blocks = scheduler.SortBlocks(out.Blocks)
	}
	return out
}

// ShiftBlock moves a block by delta minutes (negative moves it earlier) and
// re-sorts, which may carry it past its neighbours. Times wrap on a 24h face.
func ShiftBlock(r models.Routine, id string, delta int) models.Routine {
	b, ok := r.Block(id)
	if !ok {
		return r.Clone()
	}
	at := b.Time.Add(delta)
	return UpdateBlock(r, id, Patch{Time: &at})
}

// DeleteBlock removes a block by id, keeping the order of the rest.
// Deleting an id that is already gone leaves the routine unchanged.
func DeleteBlock(r models.Routine, id string) models.Routine {
	out := r.Clone()
	out.Blocks = out.Blocks[:0]
	for _, b := range r.Blocks {
		if b.ID != id {
			out.Blocks = append(out.Blocks, b)
		}
	}
	out.Blocks = scheduler.SortBlocks(out.Blocks)
	return out
}

// CompleteBlock moves a pending block to completed. Other states are left alone.
func CompleteBlock(r models.Routine, id string) models.Routine {
	return transition(r, id, models.StatusCompleted)
}

// CancelBlock moves a pending block to canceled. Other states are left alone.
func CancelBlock(r models.Routine, id string) models.Routine {
	return transition(r, id, models.StatusCanceled)
}

// ResetStatuses puts every block back to pending, for the start of a new day.
func ResetStatuses(r models.Routine) models.Routine {
	out := r.Clone()
	for i := range out.Blocks {
		out.Blocks[i].Status = models.StatusPending
	}
	return out
}

// ToggleAlarm flips the alarm flag of a block.
func ToggleAlarm(r models.Routine, id string) models.Routine {
	b, ok := r.Block(id)
	if !ok {
		return r.Clone()
	}
	enabled := !b.AlarmEnabled
	return UpdateBlock(r, id, Patch{AlarmEnabled: &enabled})
}

func transition(r models.Routine, id string, to models.BlockStatus) models.Routine {
	b, ok := r.Block(id)
	if !ok || b.Status != models.StatusPending {
		return r.Clone()
	}
	return UpdateBlock(r, id, Patch{Status: &to})
}

func indexOf(r models.Routine, id string) int {
	for i, b := range r.Blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}
