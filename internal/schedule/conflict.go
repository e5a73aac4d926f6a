package schedule

import "github.com/google/uuid"

// Conflict identifies one existing entry a candidate window collides with,
// in the shape handlers return to the client.
type Conflict struct {
	EntryID   string  `json:"entry_id"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Subject   *string `json:"subject,omitempty"`
}

// Overlaps reports whether two half-open windows intersect. Entries for
// different people or different weekdays never overlap; touching endpoints
// do not count.
func Overlaps(a, b Entry) bool {
	if a.PersonID != b.PersonID || a.DayOfWeek != b.DayOfWeek {
		return false
	}
	return a.StartMinute < b.EndMinute && b.StartMinute < a.EndMinute
}

// FindConflicts collects every existing entry the candidate collides with.
// excludeID removes the entry being edited from the comparison set.
func FindConflicts(candidate Entry, existing []Entry, excludeID *uuid.UUID) []Conflict {
	var conflicts []Conflict
	for _, e := range existing {
		if excludeID != nil && e.ID == *excludeID {
			continue
		}
		if Overlaps(candidate, e) {
			conflicts = append(conflicts, Conflict{
				EntryID:   e.ID.String(),
				StartTime: FormatClock(e.StartMinute),
				EndTime:   FormatClock(e.EndMinute),
				Subject:   e.Subject,
			})
		}
	}
	return conflicts
}
