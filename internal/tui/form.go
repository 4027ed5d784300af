package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daychain/internal/constants"
	"github.com/julianstephens/daychain/internal/models"
)

func validateClock(s string) error {
	_, err := models.ParseClock(strings.TrimSpace(s))
	return err
}

func categoryOptions() []huh.Option[models.Category] {
	opts := make([]huh.Option[models.Category], len(models.Categories))
	for i, c := range models.Categories {
		opts[i] = huh.NewOption(string(c), c)
	}
	return opts
}

// NewBlockForm builds the add-block form bound to fm.
func NewBlockForm(fm *BlockFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Time (HH:MM)").
				Value(&fm.Time).
				Validate(validateClock),
			huh.NewInput().
				Title("Activity").
				Placeholder(constants.DefaultBlockActivity).
				Value(&fm.Activity),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&fm.Category),
			huh.NewConfirm().
				Title("Alarm at start?").
				Value(&fm.Alarm),
		),
	)
}

// NewExtraForm asks only for the activity; the block lands at the current time.
func NewExtraForm(fm *BlockFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What came up?").
				Value(&fm.Activity),
		),
	)
}
