package payroll

type RecomputeRequest struct {
	PersonID        string `json:"person_id" binding:"required"`
	PeriodStart     string `json:"period_start" binding:"required"`
	PeriodEnd       string `json:"period_end" binding:"required"`
	OtherDeductions int64  `json:"other_deductions"`
}

type PeriodSummary struct {
	PersonID          string        `json:"person_id"`
	PeriodStart       string        `json:"period_start"`
	PeriodEnd         string        `json:"period_end"`
	PresentSessions   int           `json:"present_sessions"`
	LateSessions      int           `json:"late_sessions"`
	CompletedSessions int           `json:"completed_sessions"`
	AbsentSessions    int           `json:"absent_sessions"`
	NoRecordSessions  int           `json:"no_record_sessions"`
	HoursWorked       float64       `json:"hours_worked"`
	AttendanceRate    float64       `json:"attendance_rate"`
	Penalties         PenaltyResult `json:"penalties"`
}

type LineResponse struct {
	ID               string  `json:"id"`
	PersonID         string  `json:"person_id"`
	PeriodStart      string  `json:"period_start"`
	PeriodEnd        string  `json:"period_end"`
	BaseSalary       int64   `json:"base_salary"`
	OvertimeBonus    int64   `json:"overtime_bonus"`
	LateDeduction    int64   `json:"late_deduction"`
	AbsenceDeduction int64   `json:"absence_deduction"`
	OtherDeductions  int64   `json:"other_deductions"`
	GrossPay         int64   `json:"gross_pay"`
	NetPay           int64   `json:"net_pay"`
	Status           string  `json:"status"`
	CreatedBy        string  `json:"created_by"`
	FinalizedBy      *string `json:"finalized_by,omitempty"`
	FinalizedAt      *string `json:"finalized_at,omitempty"`
	PaidAt           *string `json:"paid_at,omitempty"`
}
