package attendance

type CheckInRequest struct {
	PersonID        string  `json:"person_id" binding:"required"`
	ScheduleEntryID *string `json:"schedule_entry_id"`
	Source          string  `json:"source"`
	Notes           *string `json:"notes"`
}

type CheckOutRequest struct {
	PersonID        string  `json:"person_id" binding:"required"`
	ScheduleEntryID *string `json:"schedule_entry_id"`
	Notes           *string `json:"notes"`
}

type EventResponse struct {
	ID              string  `json:"id"`
	PersonID        string  `json:"person_id"`
	ScheduleEntryID *string `json:"schedule_entry_id,omitempty"`
	EventDate       string  `json:"event_date"`
	TimeIn          *string `json:"time_in,omitempty"`
	TimeOut         *string `json:"time_out,omitempty"`
	Status          *string `json:"status,omitempty"`
	Source          string  `json:"source"`
	Notes           *string `json:"notes,omitempty"`
}

type ResolvedResponse struct {
	PersonID        string  `json:"person_id"`
	Date            string  `json:"date"`
	ScheduleEntryID *string `json:"schedule_entry_id,omitempty"`
	Status          string  `json:"status"`
	HoursWorked     float64 `json:"hours_worked"`
	MinutesLate     int     `json:"minutes_late"`
	IsOvertimeSlot  bool    `json:"is_overtime_slot"`
}
