package employee

type CreatePersonRequest struct {
	FullName   string  `json:"full_name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	Role       string  `json:"role" binding:"required"`
	Position   *string `json:"position"`
	BaseSalary int64   `json:"base_salary"`
}

type PersonResponse struct {
	ID               string  `json:"id"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	Role             string  `json:"role"`
	Position         *string `json:"position,omitempty"`
	EmploymentStatus string  `json:"employment_status"`
	BaseSalary       int64   `json:"base_salary"`
}
