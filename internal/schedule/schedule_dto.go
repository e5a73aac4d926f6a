package schedule

type CreateEntryRequest struct {
	PersonID   string  `json:"person_id" binding:"required"`
	DayOfWeek  int     `json:"day_of_week"`
	StartTime  string  `json:"start_time" binding:"required"`
	EndTime    string  `json:"end_time" binding:"required"`
	Subject    *string `json:"subject"`
	Room       *string `json:"room"`
	IsOvertime bool    `json:"is_overtime"`
}

type UpdateEntryRequest struct {
	DayOfWeek  int     `json:"day_of_week"`
	StartTime  string  `json:"start_time" binding:"required"`
	EndTime    string  `json:"end_time" binding:"required"`
	Subject    *string `json:"subject"`
	Room       *string `json:"room"`
	IsOvertime bool    `json:"is_overtime"`
}

type EntryResponse struct {
	ID         string  `json:"id"`
	PersonID   string  `json:"person_id"`
	DayOfWeek  int     `json:"day_of_week"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Subject    *string `json:"subject,omitempty"`
	Room       *string `json:"room,omitempty"`
	IsOvertime bool    `json:"is_overtime"`
}
