package handler

// updateUserRequest is a partial patch: absent fields mean "leave unchanged",
// never "clear". Pointer fields distinguish absent from zero.
type updateUserRequest struct {
	ID           string  `json:"id"            validate:"required"`
	FullName     *string `json:"full_name"     validate:"omitempty,min=1,max=100"`
	Email        *string `json:"email"         validate:"omitempty,email"`
	Password     *string `json:"password"      validate:"omitempty,min=8"`
	Role         *string `json:"role"          validate:"omitempty,oneof=Admin Manager Employee"`
	DepartmentID *int    `json:"department_id" validate:"omitempty,gt=0"`
	JobTitle     *string `json:"job_title"     validate:"omitempty,min=1,max=50"`
	IsActive     *bool   `json:"is_active"`
}
