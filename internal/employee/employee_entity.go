package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin         = "ADMIN"
	RoleHR            = "HR"
	RoleAccounting    = "ACCOUNTING"
	RoleFaculty       = "FACULTY"
	RoleGuard         = "GUARD"
	RoleStaff         = "STAFF"
	RoleStudentAffair = "STUDENT_AFFAIRS"

	PositionDean        = "DEAN"
	PositionProgramHead = "PROGRAM_HEAD"
	PositionFullTime    = "FULL_TIME"
	PositionPartTime    = "PART_TIME"

	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Person is the directory record the engine reads. The directory
// collaborator owns its lifecycle; the core only creates and lists.
type Person struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName         string         `gorm:"column:full_name;type:varchar(120);not null"`
	Email            string         `gorm:"type:varchar(120);uniqueIndex:uq_person_email;not null"`
	Password         string         `gorm:"type:varchar(120);not null"`
	Role             string         `gorm:"type:varchar(30);not null;index"`
	Position         *string        `gorm:"type:varchar(30)"`
	EmploymentStatus string         `gorm:"column:employment_status;type:varchar(20);not null;default:ACTIVE"`
	BaseSalary       int64          `gorm:"column:base_salary;type:bigint;not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Person) TableName() string {
	return "persons"
}

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleHR, RoleAccounting, RoleFaculty, RoleGuard, RoleStaff, RoleStudentAffair:
		return true
	default:
		return false
	}
}

func IsValidPosition(position string) bool {
	switch position {
	case PositionDean, PositionProgramHead, PositionFullTime, PositionPartTime:
		return true
	default:
		return false
	}
}
