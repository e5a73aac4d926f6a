package events

import "time"

const PayrollFinalizedTopic = "campus.payroll.lifecycle.v1"

type PayrollFinalizedEvent struct {
	EventType   string    `json:"event_type"`
	LineID      string    `json:"line_id"`
	PersonID    string    `json:"person_id"`
	PeriodStart string    `json:"period_start"`
	PeriodEnd   string    `json:"period_end"`
	NetPay      int64     `json:"net_pay"`
	OccurredAt  time.Time `json:"occurred_at"`
}
