package request

type CreateRequest struct {
	RequestType string  `json:"request_type" binding:"required"`
	Reason      string  `json:"reason" binding:"required"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`

	// Gate pass payload.
	Destination *string `json:"destination"`
	TimeOut     *string `json:"time_out"`
	TimeIn      *string `json:"time_in"`

	// Leave payload.
	LeaveType *string `json:"leave_type"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type RequestResponse struct {
	ID              string  `json:"id"`
	RequesterID     string  `json:"requester_id"`
	RequestType     string  `json:"request_type"`
	Status          string  `json:"status"`
	Reason          string  `json:"reason"`
	StartDate       *string `json:"start_date,omitempty"`
	EndDate         *string `json:"end_date,omitempty"`
	Destination     *string `json:"destination,omitempty"`
	TimeOut         *string `json:"time_out,omitempty"`
	TimeIn          *string `json:"time_in,omitempty"`
	LeaveType       *string `json:"leave_type,omitempty"`
	DurationDays    *int    `json:"duration_days,omitempty"`
	DeanID          *string `json:"dean_id,omitempty"`
	DeanActedAt     *string `json:"dean_acted_at,omitempty"`
	GuardID         *string `json:"guard_id,omitempty"`
	GuardActedAt    *string `json:"guard_acted_at,omitempty"`
	RejectedBy      *string `json:"rejected_by,omitempty"`
	RejectedAt      *string `json:"rejected_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CancelledAt     *string `json:"cancelled_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type AuditLogResponse struct {
	ID         string  `json:"id"`
	RequestID  string  `json:"request_id"`
	ActorID    string  `json:"actor_id"`
	Action     string  `json:"action"`
	FromStatus string  `json:"from_status"`
	ToStatus   string  `json:"to_status"`
	Note       *string `json:"note,omitempty"`
	CreatedAt  string  `json:"created_at"`
}
