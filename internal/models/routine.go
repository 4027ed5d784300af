package models

// Routine is a day-plan template: an ordered set of blocks.
// Blocks are kept sorted by Time ascending by every mutator.
type Routine struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Blocks      []TimeBlock `json:"blocks"`
}

// Clone returns a copy that shares no block storage with r.
func (r Routine) Clone() Routine {
	out := r
	out.Blocks = make([]TimeBlock, len(r.Blocks))
	copy(out.Blocks, r.Blocks)
	return out
}

// Block returns the block with the given id.
func (r Routine) Block(id string) (TimeBlock, bool) {
	for _, b := range r.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return TimeBlock{}, false
}

// Catalog holds every routine the user has plus the one in use.
type Catalog struct {
	CurrentID string             `json:"current_id"`
	Routines  map[string]Routine `json:"routines"`
}

// Current returns the routine in use.
func (c Catalog) Current() (Routine, bool) {
	r, ok := c.Routines[c.CurrentID]
	return r, ok
}

// Clone returns a copy with its own routine map.
func (c Catalog) Clone() Catalog {
	out := Catalog{CurrentID: c.CurrentID, Routines: make(map[string]Routine, len(c.Routines))}
	for id, r := range c.Routines {
		out.Routines[id] = r.Clone()
	}
	return out
}
