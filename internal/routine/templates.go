package routine

import (
	"fmt"

	"github.com/julianstephens/daychain/internal/models"
)

const (
	TemplateMorningProductive = "morning-productive"
	TemplateDailyChores       = "daily-chores"
)

type templateBlock struct {
	at       string
	activity string
	category models.Category
}

// template block ids are fixed so the defaults resolve the same way before
// they are first saved.
func template(id, name, description string, blocks []templateBlock) models.Routine {
	r := models.Routine{ID: id, Name: name, Description: description}
	for i, tb := range blocks {
		r.Blocks = append(r.Blocks, models.TimeBlock{
			ID:           fmt.Sprintf("%s-%d", id, i+1),
			Time:         models.MustClock(tb.at),
			Activity:     tb.activity,
			Category:     tb.category,
			Status:       models.StatusPending,
			AlarmEnabled: true,
		})
	}
	return Normalize(r)
}

// Templates returns the built-in routines seeded on first run.
func Templates() []models.Routine {
	return []models.Routine{
		template(TemplateMorningProductive, "Productive Morning",
			"For people with the most energy early in the day.",
			[]templateBlock{
				{"07:00", "Wake up and self care", models.CategoryPersonal},
				{"08:00", "Tidy the room", models.CategoryChore},
				{"08:30", "Deep focus", models.CategoryWork},
				{"13:00", "Lunch and rest", models.CategoryRestorative},
			}),
		template(TemplateDailyChores, "Daily Chores",
			"Household upkeep and the essential basics.",
			[]templateBlock{
				{"07:30", "Get up and make the bed", models.CategoryChore},
				{"08:00", "Start the laundry", models.CategoryChore},
				{"09:00", "Clear the desk", models.CategoryChore},
				{"14:00", "Wash the dishes", models.CategoryChore},
				{"18:00", "Fold clean clothes", models.CategoryChore},
				{"21:00", "Quick kitchen clean", models.CategoryChore},
			}),
	}
}

// DefaultCatalog is the catalog used when nothing has been stored yet.
func DefaultCatalog() models.Catalog {
	c := models.Catalog{Routines: map[string]models.Routine{}}
	for _, r := range Templates() {
		c = Put(c, r)
	}
	return Use(c, TemplateMorningProductive)
}
