package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/julianstephens/daychain/internal/chain"
	"github.com/julianstephens/daychain/internal/constants"
	"github.com/julianstephens/daychain/internal/logger"
	"github.com/julianstephens/daychain/internal/models"
	"github.com/julianstephens/daychain/internal/reminder"
	"github.com/julianstephens/daychain/internal/routine"
)

// State reads and writes the application records on top of a Provider.
// Loads never fail: anything missing or unreadable falls back to defaults.
type State struct {
	p         Provider
	reminders reminder.Set
}

func NewState(p Provider) *State {
	return &State{p: p, reminders: reminder.DefaultSet()}
}

// WithReminderDefaults sets the reminders used when none are stored.
func (s *State) WithReminderDefaults(set reminder.Set) *State {
	s.reminders = set.Clone()
	return s
}

// Provider returns the underlying store.
func (s *State) Provider() Provider {
	return s.p
}

func (s *State) read(key string, v any) bool {
	data, err := s.p.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("Failed to read record, using defaults", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn("Malformed record, using defaults", "key", key, "error", err)
		return false
	}
	return true
}

func (s *State) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.p.Put(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// LoadCatalog returns every stored routine and the one in use. The built-in
// templates are returned when nothing usable is stored.
func (s *State) LoadCatalog() models.Catalog {
	var raw json.RawMessage
	if !s.read(constants.KeyRoutines, &raw) {
		return routine.DefaultCatalog()
	}
	routines, err := decodeRoutines(raw)
	if err != nil {
		logger.Warn("Malformed record, using defaults", "key", constants.KeyRoutines, "error", err)
		return routine.DefaultCatalog()
	}
	if len(routines) == 0 {
		return routine.DefaultCatalog()
	}

	c := models.Catalog{Routines: make(map[string]models.Routine, len(routines))}
	for _, r := range routines {
		if r.ID == "" {
			continue
		}
		if _, dup := c.Routines[r.ID]; dup {
			continue
		}
		c.Routines[r.ID] = RepairRoutine(r)
	}
	if len(c.Routines) == 0 {
		return routine.DefaultCatalog()
	}

	var current string
	if s.read(constants.KeyCurrentRoutine, &current) {
		c.CurrentID = current
	}
	if _, ok := c.Routines[c.CurrentID]; !ok {
		c.CurrentID = fallbackCurrent(c)
	}
	return c
}

// RawCatalog returns the stored routines exactly as written, without repair,
// for diagnostics. ok is false when nothing is stored.
func (s *State) RawCatalog() (c models.Catalog, ok bool, err error) {
	data, err := s.p.Get(constants.KeyRoutines)
	if errors.Is(err, ErrNotFound) {
		return models.Catalog{}, false, nil
	}
	if err != nil {
		return models.Catalog{}, false, err
	}
	routines, err := decodeRoutines(data)
	if err != nil {
		return models.Catalog{}, true, fmt.Errorf("malformed %s record: %w", constants.KeyRoutines, err)
	}

	c = models.Catalog{Routines: make(map[string]models.Routine, len(routines))}
	for _, r := range routines {
		c.Routines[r.ID] = r
	}
	if data, err := s.p.Get(constants.KeyCurrentRoutine); err == nil {
		if err := json.Unmarshal(data, &c.CurrentID); err != nil {
			return c, true, fmt.Errorf("malformed %s record: %w", constants.KeyCurrentRoutine, err)
		}
	}
	return c, true, nil
}

// RawChain returns the stored chain entries without dropping malformed dates.
func (s *State) RawChain() ([]string, error) {
	data, err := s.p.Get(constants.KeyChain)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var dates []string
	if err := json.Unmarshal(data, &dates); err != nil {
		return nil, fmt.Errorf("malformed %s record: %w", constants.KeyChain, err)
	}
	return dates, nil
}

// SaveCatalog writes the routines and the current routine id.
func (s *State) SaveCatalog(c models.Catalog) error {
	ids := make([]string, 0, len(c.Routines))
	for id := range c.Routines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	routines := make([]models.Routine, 0, len(ids))
	for _, id := range ids {
		routines = append(routines, c.Routines[id])
	}

	if err := s.write(constants.KeyRoutines, routines); err != nil {
		return err
	}
	return s.write(constants.KeyCurrentRoutine, c.CurrentID)
}

// LoadChain returns the marked days with malformed dates dropped.
func (s *State) LoadChain() chain.Chain {
	var dates []string
	if !s.read(constants.KeyChain, &dates) {
		return chain.Chain{}
	}
	return chain.New(dates...)
}

func (s *State) SaveChain(c chain.Chain) error {
	if c == nil {
		c = chain.Chain{}
	}
	return s.write(constants.KeyChain, c)
}

// LoadReminders returns the stored reminders merged over the defaults, so a
// reminder missing from storage still exists.
func (s *State) LoadReminders() reminder.Set {
	set := s.reminders.Clone()
	var stored reminder.Set
	if !s.read(constants.KeyReminders, &stored) {
		return set
	}
	for name, st := range stored {
		set[name] = st
	}
	return set
}

func (s *State) SaveReminders(set reminder.Set) error {
	return s.write(constants.KeyReminders, set)
}

// decodeRoutines accepts both the list form written by SaveCatalog and an
// id-keyed object.
func decodeRoutines(raw json.RawMessage) ([]models.Routine, error) {
	var list []models.Routine
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var byID map[string]models.Routine
	if err := json.Unmarshal(raw, &byID); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		r := byID[id]
		if r.ID == "" {
			r.ID = id
		}
		list = append(list, r)
	}
	return list, nil
}

// RepairRoutine restores the routine invariants on a record read from storage:
// blocks sorted, ids present and unique (first wins), known categories and
// statuses only.
func RepairRoutine(r models.Routine) models.Routine {
	out := r.Clone()
	out.Blocks = out.Blocks[:0]
	seen := make(map[string]struct{}, len(r.Blocks))
	for _, b := range r.Blocks {
		if b.ID == "" {
			b.ID = uuid.New().String()
		}
		if _, dup := seen[b.ID]; dup {
			logger.Warn("Dropping duplicate block", "routine", r.ID, "block", b.ID)
			continue
		}
		seen[b.ID] = struct{}{}

		if c, err := models.ParseCategory(string(b.Category)); err == nil {
			b.Category = c
		} else {
			b.Category = models.CategoryPersonal
		}
		if st, err := models.ParseStatus(string(b.Status)); err == nil {
			b.Status = st
		} else {
			b.Status = models.StatusPending
		}
		out.Blocks = append(out.Blocks, b)
	}
	return routine.Normalize(out)
}

func fallbackCurrent(c models.Catalog) string {
	if _, ok := c.Routines[routine.TemplateMorningProductive]; ok {
		return routine.TemplateMorningProductive
	}
	ids := make([]string, 0, len(c.Routines))
	for id := range c.Routines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids[0]
}

// Copy moves every record from src to dst and returns how many were copied.
func Copy(src, dst Provider) (int, error) {
	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source records: %w", err)
	}
	copied := 0
	for _, key := range keys {
		value, err := src.Get(key)
		if err != nil {
			return copied, fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if err := dst.Put(key, value); err != nil {
			return copied, fmt.Errorf("failed to write %s to destination: %w", key, err)
		}
		copied++
	}
	return copied, nil
}
