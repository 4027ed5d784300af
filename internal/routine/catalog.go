package routine

import (
	"strings"

	"github.com/julianstephens/daychain/internal/constants"
	"github.com/julianstephens/daychain/internal/models"
)

// NewRoutine creates an empty routine with a single starter block.
func NewRoutine(name, description string) models.Routine {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "New routine"
	}
	at := models.MustClock(constants.StarterBlockTime)
	r := models.Routine{
		ID:          "custom-" + newID(),
		Name:        name,
		Description: description,
		Blocks:      []models.TimeBlock{},
	}
	return AddBlock(r, BlockFields{Time: &at, Activity: constants.StarterBlockActivity, Category: models.CategoryPersonal})
}

// Put stores r in the catalog, replacing any routine with the same id.
// The first routine stored becomes the current one.
func Put(c models.Catalog, r models.Routine) models.Catalog {
	out := c.Clone()
	out.Routines[r.ID] = Normalize(r)
	if out.CurrentID == "" {
		out.CurrentID = r.ID
	}
	return out
}

// Remove drops a routine. The routine in use cannot be removed; asking to do
// so is a no-op, as is an unknown id.
func Remove(c models.Catalog, id string) models.Catalog {
	out := c.Clone()
	if id == out.CurrentID {
		return out
	}
	delete(out.Routines, id)
	return out
}

// Use switches the current routine. Unknown ids are ignored.
func Use(c models.Catalog, id string) models.Catalog {
	out := c.Clone()
	if _, ok := out.Routines[id]; ok {
		out.CurrentID = id
	}
	return out
}

// Apply runs fn against the current routine and stores the result.
func Apply(c models.Catalog, fn func(models.Routine) models.Routine) models.Catalog {
	current, ok := c.Current()
	if !ok {
		return c.Clone()
	}
	return Put(c, fn(current))
}

// Find resolves a routine by exact id or case-insensitive name.
func Find(c models.Catalog, ref string) (models.Routine, bool) {
	if r, ok := c.Routines[ref]; ok {
		return r, true
	}
	for _, r := range c.Routines {
		if strings.EqualFold(r.Name, ref) {
			return r, true
		}
	}
	return models.Routine{}, false
}

// FindBlock resolves a block by id or unique id prefix.
func FindBlock(r models.Routine, ref string) (models.TimeBlock, bool) {
	if b, ok := r.Block(ref); ok {
		return b, true
	}
	var match models.TimeBlock
	found := 0
	for _, b := range r.Blocks {
		if ref != "" && strings.HasPrefix(b.ID, ref) {
			match = b
			found++
		}
	}
	return match, found == 1
}
