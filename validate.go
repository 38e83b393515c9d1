package main

import "time"

// Canonical weekday keys for habit day maps, Monday first. These match Go's
// (and the client chart's) three-letter abbreviations.
var weekdayKeys = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func isWeekdayKey(day string) bool {
	for _, k := range weekdayKeys {
		if k == day {
			return true
		}
	}
	return false
}

// habitPayload is the habit-creation body.
type habitPayload struct {
	Title      string    `json:"title"`
	Color      string    `json:"color"`
	RepeatMode string    `json:"repeatMode"`
	Days       []string  `json:"days"`
	Reminder   *Reminder `json:"reminder"`
	UserID     string    `json:"userId"`
}

// validateHabitPayload applies the creation rules in a fixed order and reports
// the first failure: required fields, then repeat mode, then weekly days, then
// reminder time.
func validateHabitPayload(p habitPayload) *apiError {
	if p.Title == "" || p.Color == "" || p.UserID == "" {
		return validationError("Title, color, and userId are required.")
	}
	if p.RepeatMode != RepeatDaily && p.RepeatMode != RepeatWeekly {
		return validationError("Invalid repeat mode.")
	}
	if p.RepeatMode == RepeatWeekly && len(p.Days) == 0 {
		return validationError("Please select at least one day for weekly habits.")
	}
	if p.Reminder != nil && p.Reminder.Enabled && (p.Reminder.Time == nil || *p.Reminder.Time == "") {
		return validationError("Please provide a reminder time.")
	}
	return nil
}

// normalizeReminder collapses the payload reminder to a consistent value:
// enabled with its time, or fully disabled.
func normalizeReminder(r *Reminder) Reminder {
	if r != nil && r.Enabled {
		return Reminder{Enabled: true, Time: r.Time}
	}
	return Reminder{Enabled: false, Time: nil}
}

const isoMilli = "2006-01-02T15:04:05.000Z07:00"

// normalizeDueDate accepts RFC3339 timestamps or bare YYYY-MM-DD dates and
// returns the millisecond-precision ISO form, or nil for an empty input.
func normalizeDueDate(raw string) (*string, *apiError) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse("2006-01-02", raw)
	}
	if err != nil {
		return nil, validationError("Invalid due date.")
	}
	s := t.UTC().Format(isoMilli)
	return &s, nil
}
