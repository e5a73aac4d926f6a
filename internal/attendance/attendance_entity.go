package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is one raw check-in/check-out capture. Events are append-only;
// the engine only ever attaches a derived status, never rewrites times.
// A nil ScheduleEntryID marks a general work-hours event outside any
// class session.
type Event struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonID        uuid.UUID      `gorm:"column:person_id;type:uuid;not null;index:idx_person_date"`
	ScheduleEntryID *uuid.UUID     `gorm:"column:schedule_entry_id;type:uuid;index"`
	EventDate       time.Time      `gorm:"column:event_date;type:date;not null;index:idx_person_date"`
	TimeIn          *time.Time     `gorm:"column:time_in;type:timestamptz"`
	TimeOut         *time.Time     `gorm:"column:time_out;type:timestamptz"`
	Status          *string        `gorm:"type:varchar(20)"`
	Source          string         `gorm:"type:varchar(30);not null;default:MANUAL"`
	Notes           *string        `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Event) TableName() string {
	return "attendance_events"
}
