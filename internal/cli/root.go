package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/daychain/internal/backup"
	"github.com/julianstephens/daychain/internal/config"
	"github.com/julianstephens/daychain/internal/logger"
	"github.com/julianstephens/daychain/internal/models"
	"github.com/julianstephens/daychain/internal/notifier"
	"github.com/julianstephens/daychain/internal/routine"
	"github.com/julianstephens/daychain/internal/storage"
	"github.com/julianstephens/daychain/internal/storage/sqlite"
)

// ErrNoRoutine is returned when the catalog has no routine in use.
var ErrNoRoutine = errors.New("no routine in use")

type Context struct {
	Store     storage.Provider
	State     *storage.State
	Config    config.Config
	ConfigDir string
	Notifier  notifier.Notifier
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewContext wires a Context around store using cfg.
func NewContext(store storage.Provider, cfg config.Config, configDir string) *Context {
	return &Context{
		Store:     store,
		State:     storage.NewState(store).WithReminderDefaults(cfg.ReminderDefaults()),
		Config:    cfg,
		ConfigDir: configDir,
		Notifier:  notifier.New(cfg.Notifications.Enabled, cfg.Notifications.Sound),
		Now:       time.Now,
	}
}

// Clock returns the current time.
func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// CurrentRoutine returns the routine in use.
func (c *Context) CurrentRoutine() (models.Routine, error) {
	r, ok := c.State.LoadCatalog().Current()
	if !ok {
		return models.Routine{}, ErrNoRoutine
	}
	return r, nil
}

// UpdateCurrent applies fn to the routine in use and persists the catalog.
func (c *Context) UpdateCurrent(fn func(models.Routine) models.Routine) (models.Routine, error) {
	catalog := c.State.LoadCatalog()
	if _, ok := catalog.Current(); !ok {
		return models.Routine{}, ErrNoRoutine
	}
	catalog = routine.Apply(catalog, fn)
	if err := c.State.SaveCatalog(catalog); err != nil {
		return models.Routine{}, err
	}
	r, _ := catalog.Current()
	return r, nil
}

// FindBlock looks up a block of the routine in use by id or id prefix.
func (c *Context) FindBlock(ref string) (models.TimeBlock, error) {
	r, err := c.CurrentRoutine()
	if err != nil {
		return models.TimeBlock{}, err
	}
	b, ok := routine.FindBlock(r, ref)
	if !ok {
		return models.TimeBlock{}, fmt.Errorf("no block matching %q in routine %q", ref, r.Name)
	}
	return b, nil
}

// ShortID trims a uuid for display. Prefixes are accepted wherever an id is.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
