package ports

import (
	"context"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

// RegisterInput carries self-service registration data. DepartmentID and
// JobTitle are optional; zero values mean "not provided".
type RegisterInput struct {
	FullName     string
	Email        string
	Password     string
	Role         domain.Role
	DepartmentID int
	JobTitle     string
}

// UserSummary is the password-free projection of an identity returned to
// callers and embedded alongside issued tokens.
type UserSummary struct {
	ID           string      `json:"id"`
	FullName     string      `json:"full_name"`
	Email        string      `json:"email"`
	Role         domain.Role `json:"role"`
	DepartmentID *int        `json:"department_id,omitempty"`
	JobTitle     string      `json:"job_title,omitempty"`
	IsActive     bool        `json:"is_active"`
}

// Summarize projects an identity into its public summary.
func Summarize(u *domain.User) UserSummary {
	s := UserSummary{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
		JobTitle: u.JobTitle(),
		IsActive: u.IsActive,
	}
	if dept, ok := u.DepartmentID(); ok {
		s.DepartmentID = &dept
	}
	return s
}

// AuthResult is returned by both registration and login.
type AuthResult struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// AuthService handles self-service registration and login. Tokens are
// stateless; no session state is kept between calls.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
