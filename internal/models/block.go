package models

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryWork        Category = "work"
	CategoryRestorative Category = "restorative"
	CategoryPersonal    Category = "personal"
	CategoryBreak       Category = "break"
	CategoryChore       Category = "chore"
)

// Categories lists the closed set of block categories in display order.
var Categories = []Category{CategoryWork, CategoryRestorative, CategoryPersonal, CategoryBreak, CategoryChore}

// ParseCategory accepts a category name case-insensitively. The legacy name
// "sacred" maps to restorative.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "sacred" {
		return CategoryRestorative, nil
	}
	for _, c := range Categories {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (expected one of work, restorative, personal, break, chore)", s)
}

func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

type BlockStatus string

const (
	StatusPending   BlockStatus = "pending"
	StatusCompleted BlockStatus = "completed"
	StatusCanceled  BlockStatus = "canceled"
)

func ParseStatus(s string) (BlockStatus, error) {
	switch BlockStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusCanceled:
		return StatusCanceled, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// TimeBlock is one scheduled activity in a routine.
type TimeBlock struct {
	ID           string      `json:"id"`
	Time         Clock       `json:"time"`
	Activity     string      `json:"activity"`
	Category     Category    `json:"category"`
	Status       BlockStatus `json:"status"`
	AlarmEnabled bool        `json:"alarm_enabled"`
	IsExtra      bool        `json:"is_extra,omitempty"`
}
