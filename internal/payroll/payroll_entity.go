package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusFinalized = "FINALIZED"
	StatusPaid      = "PAID"
)

// Line is one payroll computation for a person and period. Amounts are
// in centavos. A line is freely recomputable while PENDING; FINALIZED
// freezes it as the audit boundary.
type Line struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonID uuid.UUID `gorm:"column:person_id;type:uuid;not null;index:idx_person_period,unique"`

	PeriodStart time.Time `gorm:"column:period_start;type:date;not null;index:idx_person_period,unique"`
	PeriodEnd   time.Time `gorm:"column:period_end;type:date;not null;index:idx_person_period,unique"`

	BaseSalary       int64 `gorm:"column:base_salary;type:bigint;not null;default:0"`
	OvertimeBonus    int64 `gorm:"column:overtime_bonus;type:bigint;not null;default:0"`
	LateDeduction    int64 `gorm:"column:late_deduction;type:bigint;not null;default:0"`
	AbsenceDeduction int64 `gorm:"column:absence_deduction;type:bigint;not null;default:0"`
	OtherDeductions  int64 `gorm:"column:other_deductions;type:bigint;not null;default:0"`
	GrossPay         int64 `gorm:"column:gross_pay;type:bigint;not null;default:0"`
	NetPay           int64 `gorm:"column:net_pay;type:bigint;not null;default:0"`

	Status      string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedBy   uuid.UUID  `gorm:"column:created_by;type:uuid;not null"`
	FinalizedBy *uuid.UUID `gorm:"column:finalized_by;type:uuid"`
	FinalizedAt *time.Time `gorm:"index"`
	PaidAt      *time.Time `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Line) TableName() string {
	return "payroll_lines"
}
