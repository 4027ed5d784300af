package storage_test

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/daychain/internal/chain"
	"github.com/julianstephens/daychain/internal/constants"
	"github.com/julianstephens/daychain/internal/models"
	"github.com/julianstephens/daychain/internal/reminder"
	"github.com/julianstephens/daychain/internal/routine"
	"github.com/julianstephens/daychain/internal/scheduler"
	"github.com/julianstephens/daychain/internal/storage"
)

func setupState(t *testing.T, records map[string]string) *storage.State {
	t.Helper()
	s := setupJSONStore(t)
	for key, value := range records {
		if err := s.Put(key, []byte(value)); err != nil {
			t.Fatalf("Put(%s) error = %v", key, err)
		}
	}
	return storage.NewState(s)
}

func TestState_LoadCatalogDefaults(t *testing.T) {
	tests := []struct {
		name    string
		records map[string]string
	}{
		{"nothing stored", nil},
		{"malformed", map[string]string{constants.KeyRoutines: `{"oops": 12}`}},
		{"empty list", map[string]string{constants.KeyRoutines: `[]`}},
		{"bad clock", map[string]string{constants.KeyRoutines: `[{"id":"x","blocks":[{"id":"a","time":"25:99"}]}]`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := setupState(t, tt.records).LoadCatalog()
			if c.CurrentID != routine.TemplateMorningProductive {
				t.Errorf("current = %q, want default", c.CurrentID)
			}
			if len(c.Routines) != len(routine.Templates()) {
				t.Errorf("got %d routines, want templates", len(c.Routines))
			}
		})
	}
}

func TestState_CatalogRoundTrip(t *testing.T) {
	st := setupState(t, nil)
	c := routine.Put(routine.DefaultCatalog(), routine.NewRoutine("Evening", ""))
	evening, _ := routine.Find(c, "Evening")
	c = routine.Use(c, evening.ID)

	if err := st.SaveCatalog(c); err != nil {
		t.Fatalf("SaveCatalog() error = %v", err)
	}
	got := st.LoadCatalog()
	if got.CurrentID != evening.ID {
		t.Errorf("current = %q, want %q", got.CurrentID, evening.ID)
	}
	if !reflect.DeepEqual(got.Routines[evening.ID], evening) {
		t.Errorf("routine changed on round trip: %+v", got.Routines[evening.ID])
	}
}

func TestState_LoadCatalogRepairs(t *testing.T) {
	stored := `{
		"legacy": {
			"name": "Legacy",
			"blocks": [
				{"id": "b", "time": "13:00", "activity": "Lunch", "category": "sacred", "status": "pending"},
				{"id": "a", "time": "08:00", "activity": "Focus", "category": "WORK", "status": "done?"},
				{"id": "b", "time": "15:00", "activity": "Duplicate", "category": "work"},
				{"id": "c", "time": "09:00", "activity": "Odd", "category": "gaming"}
			]
		}
	}`
	c := setupState(t, map[string]string{
		constants.KeyRoutines:       stored,
		constants.KeyCurrentRoutine: `"missing"`,
	}).LoadCatalog()

	r, ok := c.Routines["legacy"]
	if !ok {
		t.Fatalf("legacy routine not loaded: %+v", c)
	}
	if c.CurrentID != "legacy" {
		t.Errorf("current = %q, want fallback to legacy", c.CurrentID)
	}
	if !scheduler.IsSorted(r.Blocks) {
		t.Error("blocks not re-sorted")
	}

	want := []struct {
		id       string
		category models.Category
		status   models.BlockStatus
	}{
		{"a", models.CategoryWork, models.StatusPending},
		{"c", models.CategoryPersonal, models.StatusPending},
		{"b", models.CategoryRestorative, models.StatusPending},
	}
	if len(r.Blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d (duplicate should be dropped)", len(r.Blocks), len(want))
	}
	for i, w := range want {
		b := r.Blocks[i]
		if b.ID != w.id || b.Category != w.category || b.Status != w.status {
			t.Errorf("block %d = %s/%s/%s, want %s/%s/%s", i, b.ID, b.Category, b.Status, w.id, w.category, w.status)
		}
	}
	if r.Blocks[2].Activity != "Lunch" {
		t.Errorf("first duplicate should win, got %q", r.Blocks[2].Activity)
	}
}

func TestState_Chain(t *testing.T) {
	st := setupState(t, map[string]string{constants.KeyChain: `["2024-03-15", "garbage", "2024-03-14", "2024-03-15"]`})
	if got, want := st.LoadChain(), (chain.Chain{"2024-03-14", "2024-03-15"}); !reflect.DeepEqual(got, want) {
		t.Errorf("LoadChain() = %v, want %v", got, want)
	}

	if err := st.SaveChain(chain.Toggle(st.LoadChain(), "2024-03-16")); err != nil {
		t.Fatal(err)
	}
	if got := len(st.LoadChain()); got != 3 {
		t.Errorf("chain length after save = %d", got)
	}

	if got := setupState(t, map[string]string{constants.KeyChain: `{"not": "a list"}`}).LoadChain(); len(got) != 0 {
		t.Errorf("malformed chain = %v, want empty", got)
	}
}

func TestState_Reminders(t *testing.T) {
	st := setupState(t, nil)
	if got := st.LoadReminders(); !reflect.DeepEqual(got, reminder.DefaultSet()) {
		t.Errorf("LoadReminders() = %+v, want defaults", got)
	}

	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	set := reminder.DefaultSet().Record(constants.ReminderHydration, now).WithInterval(constants.ReminderMovement, 30)
	if err := st.SaveReminders(set); err != nil {
		t.Fatal(err)
	}
	got := st.LoadReminders()
	if got[constants.ReminderMovement].IntervalMinutes != 30 {
		t.Errorf("movement interval = %d", got[constants.ReminderMovement].IntervalMinutes)
	}
	if last := got[constants.ReminderHydration].LastEvent; last == nil || !last.Equal(now) {
		t.Errorf("hydration last event = %v, want %v", last, now)
	}

	// a partial record still yields both reminders
	partial, _ := json.Marshal(map[string]reminder.State{"hydration": {IntervalMinutes: 45, Enabled: true}})
	got = setupState(t, map[string]string{constants.KeyReminders: string(partial)}).LoadReminders()
	if len(got) != 2 || got[constants.ReminderHydration].IntervalMinutes != 45 {
		t.Errorf("partial reminders = %+v", got)
	}
}

func TestCopy(t *testing.T) {
	src := setupJSONStore(t)
	dst := setupJSONStore(t)
	for _, key := range []string{"chain", "routines"} {
		if err := src.Put(key, []byte(`[]`)); err != nil {
			t.Fatal(err)
		}
	}
	n, err := storage.Copy(src, dst)
	if err != nil || n != 2 {
		t.Fatalf("Copy() = %d, %v", n, err)
	}
	keys, _ := dst.Keys()
	if !reflect.DeepEqual(keys, []string{"chain", "routines"}) {
		t.Errorf("destination keys = %v", keys)
	}
}

func TestState_RawCatalog(t *testing.T) {
	s := setupState(t, nil)
	if _, ok, err := s.RawCatalog(); ok || err != nil {
		t.Fatalf("RawCatalog() on empty store = ok %v, err %v", ok, err)
	}

	s = setupState(t, map[string]string{
		constants.KeyRoutines:       `[{"id":"r","name":"R","blocks":[{"id":"a","time":"10:00","category":"gaming"},{"id":"a","time":"09:00"}]}]`,
		constants.KeyCurrentRoutine: `"missing"`,
	})
	c, ok, err := s.RawCatalog()
	if !ok || err != nil {
		t.Fatalf("RawCatalog() = ok %v, err %v", ok, err)
	}
	if c.CurrentID != "missing" {
		t.Errorf("CurrentID = %q, want the stored value", c.CurrentID)
	}
	blocks := c.Routines["r"].Blocks
	if len(blocks) != 2 || blocks[0].Category != "gaming" {
		t.Errorf("raw blocks were repaired: %+v", blocks)
	}

	s = setupState(t, map[string]string{constants.KeyRoutines: `{"oops": 12}`})
	if _, ok, err := s.RawCatalog(); !ok || err == nil {
		t.Errorf("malformed record: ok %v, err %v", ok, err)
	}
}

func TestState_RawChain(t *testing.T) {
	s := setupState(t, map[string]string{constants.KeyChain: `["2024-03-15","nope"]`})
	dates, err := s.RawChain()
	if err != nil {
		t.Fatalf("RawChain() error = %v", err)
	}
	if !reflect.DeepEqual(dates, []string{"2024-03-15", "nope"}) {
		t.Errorf("RawChain() = %v", dates)
	}
}
