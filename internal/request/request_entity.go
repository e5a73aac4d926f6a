package request

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeGatePass       = "GATE_PASS"
	TypeLeave          = "LEAVE"
	TypeOvertime       = "OVERTIME"
	TypeScheduleChange = "SCHEDULE_CHANGE"
)

const (
	StatusPending       = "PENDING"
	StatusDeanApproved  = "DEAN_APPROVED"
	StatusGuardApproved = "GUARD_APPROVED"
	StatusRejected      = "REJECTED"
	StatusCancelled     = "CANCELLED"
)

func IsValidType(t string) bool {
	switch t {
	case TypeGatePass, TypeLeave, TypeOvertime, TypeScheduleChange:
		return true
	}
	return false
}

// Request is one approval chain instance. The dean stage applies to
// every request; the guard stage only ever applies to gate passes.
type Request struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequesterID uuid.UUID `gorm:"column:requester_id;type:uuid;not null;index"`
	RequestType string    `gorm:"column:request_type;type:varchar(30);not null;index"`
	Status      string    `gorm:"type:varchar(20);not null;default:'PENDING';index"`

	Reason    string     `gorm:"type:text;not null"`
	StartDate *time.Time `gorm:"column:start_date;type:date"`
	EndDate   *time.Time `gorm:"column:end_date;type:date"`

	// Gate pass payload: where the requester is going and the planned
	// exit/return window.
	Destination *string    `gorm:"type:varchar(120)"`
	TimeOut     *time.Time `gorm:"column:time_out"`
	TimeIn      *time.Time `gorm:"column:time_in"`

	// Leave payload.
	LeaveType    *string `gorm:"column:leave_type;type:varchar(30)"`
	DurationDays *int    `gorm:"column:duration_days"`

	DeanID      *uuid.UUID `gorm:"column:dean_id;type:uuid"`
	DeanActedAt *time.Time `gorm:"column:dean_acted_at"`

	GuardID      *uuid.UUID `gorm:"column:guard_id;type:uuid"`
	GuardActedAt *time.Time `gorm:"column:guard_acted_at"`

	RejectedBy      *uuid.UUID `gorm:"column:rejected_by;type:uuid"`
	RejectedAt      *time.Time `gorm:"column:rejected_at"`
	RejectionReason *string    `gorm:"column:rejection_reason;type:text"`

	CancelledAt *time.Time `gorm:"column:cancelled_at"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Request) TableName() string {
	return "approval_requests"
}

// AuditLog is one immutable row per transition, appended in the same
// transaction as the status flip.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestID  uuid.UUID `gorm:"column:request_id;type:uuid;not null;index"`
	ActorID    uuid.UUID `gorm:"column:actor_id;type:uuid;not null"`
	Action     string    `gorm:"type:varchar(30);not null"`
	FromStatus string    `gorm:"column:from_status;type:varchar(20);not null"`
	ToStatus   string    `gorm:"column:to_status;type:varchar(20);not null"`
	Note       *string   `gorm:"type:text"`
	CreatedAt  time.Time
}

func (AuditLog) TableName() string {
	return "request_audit_logs"
}
