package attendance

import (
	"time"

	attendanceerrors "campus-hr/internal/attendance/errors"
	"campus-hr/internal/schedule"

	"github.com/google/uuid"
)

const (
	StatusPresent   = "PRESENT"
	StatusLate      = "LATE"
	StatusAbsent    = "ABSENT"
	StatusCompleted = "COMPLETED"
	StatusNoRecord  = "NO_RECORD"
)

// Resolved is the derived attendance verdict for one (person, date,
// session) triple. It is recomputed on demand and never stored stale.
type Resolved struct {
	PersonID        uuid.UUID  `json:"-"`
	Date            time.Time  `json:"-"`
	ScheduleEntryID *uuid.UUID `json:"-"`
	Status          string     `json:"status"`
	HoursWorked     float64    `json:"hours_worked"`
	MinutesLate     int        `json:"minutes_late"`
	IsOvertimeSlot  bool       `json:"is_overtime_slot"`
}

// Attended is the single authoritative presence definition: PRESENT,
// LATE and COMPLETED all count toward attendance rate.
func (r Resolved) Attended() bool {
	switch r.Status {
	case StatusPresent, StatusLate, StatusCompleted:
		return true
	default:
		return false
	}
}

// Resolve classifies one attendance event against its matched schedule
// entry. Either argument may be nil: a nil event with a non-nil entry is
// an explicit absence, a nil entry with a non-nil event is a general
// work-hours record outside any session.
//
// MinutesLate is the raw gap between the scheduled start and the actual
// time-in; the grace excess is applied by the penalty calculator, so a
// time-in exactly at start+grace still resolves on time.
func Resolve(event *Event, entry *schedule.Entry, graceMinutes int) (Resolved, error) {
	res := Resolved{}

	if entry != nil {
		id := entry.ID
		res.ScheduleEntryID = &id
		res.IsOvertimeSlot = entry.IsOvertime
	}

	if event == nil {
		if entry == nil {
			res.Status = StatusNoRecord
			return res, nil
		}
		// Scheduled session with no capture at all: an explicit negative
		// record rather than a silently missing day.
		res.Status = StatusAbsent
		return res, nil
	}

	res.PersonID = event.PersonID
	res.Date = event.EventDate

	if event.TimeIn == nil && event.TimeOut == nil {
		if entry == nil {
			res.Status = StatusNoRecord
			return res, nil
		}
		res.Status = StatusAbsent
		return res, nil
	}

	if event.TimeIn == nil && event.TimeOut != nil {
		// A time-out without a time-in is malformed capture data.
		return Resolved{}, attendanceerrors.ErrMissingTimeIn
	}

	if event.TimeIn != nil && event.TimeOut != nil {
		dur := event.TimeOut.Sub(*event.TimeIn)
		if dur < 0 {
			// Data error: surfaced, never clamped to zero.
			return Resolved{}, attendanceerrors.ErrNegativeDuration
		}
		res.HoursWorked = dur.Hours()
	}

	if entry != nil && event.TimeIn != nil {
		scheduledStart := entry.StartOn(event.EventDate)
		if gap := event.TimeIn.Sub(scheduledStart); gap > 0 {
			// Whole minutes only; seconds inside the boundary minute
			// never tip a person past the grace window.
			res.MinutesLate = int(gap.Minutes())
		}
	}

	// Lateness wins over Present/Completed regardless of time-out, so
	// billable minutes stay visible to the penalty calculator.
	if res.MinutesLate > graceMinutes {
		res.Status = StatusLate
		return res, nil
	}

	if event.TimeOut != nil {
		res.Status = StatusCompleted
	} else {
		res.Status = StatusPresent
	}
	return res, nil
}
