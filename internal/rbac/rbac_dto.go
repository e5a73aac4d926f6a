package rbac

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Position string `json:"position"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
