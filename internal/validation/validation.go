package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/daychain/internal/constants"
	"github.com/julianstephens/daychain/internal/models"
	"github.com/julianstephens/daychain/internal/scheduler"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictUnsortedBlocks   ConflictType = "unsorted_blocks"
	ConflictDuplicateBlockID ConflictType = "duplicate_block_id"
	ConflictMissingBlockID   ConflictType = "missing_block_id"
	ConflictEmptyActivity    ConflictType = "empty_activity"
	ConflictShadowedBlock    ConflictType = "shadowed_block"
	ConflictInvalidCategory  ConflictType = "invalid_category"
	ConflictInvalidStatus    ConflictType = "invalid_status"
	ConflictMissingCurrent   ConflictType = "missing_current_routine"
	ConflictInvalidDate      ConflictType = "invalid_date"
)

// Conflict represents a detected problem in a routine or the chain
type Conflict struct {
	Type        ConflictType
	Description string
	RoutineID   string
	BlockIDs    []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Count returns the number of conflicts of the given type.
func (vr *ValidationResult) Count(t ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// Validator checks stored records for broken invariants
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateRoutine reports every broken invariant in r.
func (v *Validator) ValidateRoutine(r models.Routine) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if !scheduler.IsSorted(r.Blocks) {
		result.add(Conflict{
			Type:        ConflictUnsortedBlocks,
			Description: fmt.Sprintf("Routine %q has blocks out of time order", r.Name),
			RoutineID:   r.ID,
		})
	}

	ids := make(map[string]int, len(r.Blocks))
	for _, b := range r.Blocks {
		if b.ID == "" {
			result.add(Conflict{
				Type:        ConflictMissingBlockID,
				Description: fmt.Sprintf("Routine %q has a block at %s without an id", r.Name, b.Time),
				RoutineID:   r.ID,
			})
			continue
		}
		ids[b.ID]++
	}
	dupIDs := make([]string, 0)
	for id, n := range ids {
		if n > 1 {
			dupIDs = append(dupIDs, id)
		}
	}
	sort.Strings(dupIDs)
	for _, id := range dupIDs {
		result.add(Conflict{
			Type:        ConflictDuplicateBlockID,
			Description: fmt.Sprintf("Routine %q uses block id %s %d times", r.Name, id, ids[id]),
			RoutineID:   r.ID,
			BlockIDs:    []string{id},
		})
	}

	for _, b := range r.Blocks {
		if strings.TrimSpace(b.Activity) == "" {
			result.add(Conflict{
				Type:        ConflictEmptyActivity,
				Description: fmt.Sprintf("Routine %q has a block at %s with no activity", r.Name, b.Time),
				RoutineID:   r.ID,
				BlockIDs:    []string{b.ID},
			})
		}
		if _, err := models.ParseCategory(string(b.Category)); err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidCategory,
				Description: fmt.Sprintf("Block %q has unknown category %q", b.Activity, b.Category),
				RoutineID:   r.ID,
				BlockIDs:    []string{b.ID},
			})
		}
		if _, err := models.ParseStatus(string(b.Status)); err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidStatus,
				Description: fmt.Sprintf("Block %q has unknown status %q", b.Activity, b.Status),
				RoutineID:   r.ID,
				BlockIDs:    []string{b.ID},
			})
		}
	}

	// a block sharing its start with a later one is never active
	sorted := scheduler.SortBlocks(r.Blocks)
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.Time == cur.Time {
			result.add(Conflict{
				Type:        ConflictShadowedBlock,
				Description: fmt.Sprintf("Block %q at %s is hidden by %q starting at the same time", prev.Activity, prev.Time, cur.Activity),
				RoutineID:   r.ID,
				BlockIDs:    []string{prev.ID, cur.ID},
			})
		}
	}

	return result
}

// ValidateCatalog validates every routine and checks the current routine exists.
func (v *Validator) ValidateCatalog(c models.Catalog) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	if _, ok := c.Current(); !ok {
		result.add(Conflict{
			Type:        ConflictMissingCurrent,
			Description: fmt.Sprintf("Current routine %q does not exist", c.CurrentID),
			RoutineID:   c.CurrentID,
		})
	}

	ids := make([]string, 0, len(c.Routines))
	for id := range c.Routines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		r := v.ValidateRoutine(c.Routines[id])
		result.Conflicts = append(result.Conflicts, r.Conflicts...)
	}
	return result
}

// ValidateDates checks raw chain entries before they are normalized.
func (v *Validator) ValidateDates(dates []string) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	for _, d := range dates {
		if _, err := time.Parse(constants.DateFormat, d); err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Chain entry %q is not a %s date", d, constants.DateFormat),
			})
		}
	}
	return result
}
