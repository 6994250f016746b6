package models

import (
	"encoding/json"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Reminder is the core persisted entity: a scheduled note belonging to
// exactly one user. Timestamps are RFC3339 strings. Location is an opaque
// JSON blob; the storage layer never deserializes it.
type Reminder struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	RemindAt    string   `json:"remind_at"`
	Location    string   `json:"location,omitempty"`
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// ReminderUpdate is a partial update: only non-nil fields are applied.
type ReminderUpdate struct {
	Title       *string
	Description *string
	RemindAt    *string
	Location    *string
	Priority    *Priority
	Completed   *bool
}

// Apply merges the set fields of the update into r. It does not stamp
// updated_at; the storage layer owns that.
func (u ReminderUpdate) Apply(r *Reminder) {
	if u.Title != nil {
		r.Title = *u.Title
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	if u.RemindAt != nil {
		r.RemindAt = *u.RemindAt
	}
	if u.Location != nil {
		r.Location = *u.Location
	}
	if u.Priority != nil {
		r.Priority = *u.Priority
	}
	if u.Completed != nil {
		r.Completed = *u.Completed
	}
}

// Location is the structure consumers expect inside Reminder.Location.
type Location struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	PlaceID string  `json:"place_id,omitempty"`
}

// ParseLocation decodes a location blob. Empty input yields a zero Location.
func ParseLocation(s string) (Location, error) {
	var loc Location
	if s == "" {
		return loc, nil
	}
	if err := json.Unmarshal([]byte(s), &loc); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// Encode serializes the location back into its storage form.
func (l Location) Encode() (string, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseRemindAt validates and parses a remind_at timestamp.
func ParseRemindAt(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
