package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry is one scheduled session for a person on a fixed weekday.
// Start/end are minutes since midnight; the window is half-open
// [StartMinute, EndMinute).
type Entry struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonID    uuid.UUID      `gorm:"column:person_id;type:uuid;not null;index:idx_person_day"`
	DayOfWeek   int            `gorm:"column:day_of_week;type:smallint;not null;index:idx_person_day"`
	StartMinute int            `gorm:"column:start_minute;type:smallint;not null"`
	EndMinute   int            `gorm:"column:end_minute;type:smallint;not null"`
	Subject     *string        `gorm:"type:varchar(120)"`
	Room        *string        `gorm:"type:varchar(60)"`
	IsOvertime  bool           `gorm:"column:is_overtime;not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Entry) TableName() string {
	return "schedule_entries"
}

// StartOn anchors the entry's start time onto a calendar date.
func (e Entry) StartOn(date time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		e.StartMinute/60, e.StartMinute%60, 0, 0, date.Location(),
	)
}

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", v, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
