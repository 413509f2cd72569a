package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	FullName     string `json:"full_name"     validate:"required,max=100"`
	Email        string `json:"email"         validate:"required,email"`
	Password     string `json:"password"      validate:"required,min=8"`
	Role         string `json:"role"          validate:"required,oneof=Employee Manager"`
	DepartmentID int    `json:"department_id,omitempty"`
	JobTitle     string `json:"job_title,omitempty" validate:"omitempty,max=50"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
