package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role distinguishes the three kinds of identities in the directory.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

// ParseRole converts a wire-level role name into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
}

const maxFullNameLen = 100

// DefaultEmployeeJobTitle is assigned when an employee registers without one.
const DefaultEmployeeJobTitle = "Staff"

// ManagerProfile carries the fields only managers (and admins) have.
type ManagerProfile struct {
	DepartmentID int    `json:"department_id"`
	JobTitle     string `json:"job_title,omitempty"`
}

// EmployeeProfile carries the fields only employees have.
type EmployeeProfile struct {
	JobTitle string `json:"job_title"`
}

// User is the single identity record shared by all roles. Exactly one of
// Manager or Employee is non-nil, and which one matches Role: managers and
// admins carry a ManagerProfile, employees an EmployeeProfile.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`

	Manager  *ManagerProfile  `json:"manager,omitempty"`
	Employee *EmployeeProfile `json:"employee,omitempty"`
}

// NormalizeEmail produces the canonical form used for uniqueness checks and
// lookups. Display casing is preserved on the record itself.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateBase(fullName, email, passwordHash string) error {
	if strings.TrimSpace(fullName) == "" {
		return fmt.Errorf("%w: full name is required", ErrValidation)
	}
	if len(fullName) > maxFullNameLen {
		return fmt.Errorf("%w: full name exceeds %d characters", ErrValidation, maxFullNameLen)
	}
	if NormalizeEmail(email) == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if passwordHash == "" {
		return fmt.Errorf("%w: password hash is required", ErrValidation)
	}
	return nil
}

// NewEmployee builds an Employee identity. An empty jobTitle defaults to "Staff".
func NewEmployee(fullName, email, passwordHash, jobTitle string) (*User, error) {
	if err := validateBase(fullName, email, passwordHash); err != nil {
		return nil, err
	}
	if jobTitle == "" {
		jobTitle = DefaultEmployeeJobTitle
	}
	return &User{
		FullName:     fullName,
		Email:        strings.TrimSpace(email),
		PasswordHash: passwordHash,
		Role:         RoleEmployee,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		Employee:     &EmployeeProfile{JobTitle: jobTitle},
	}, nil
}

// NewManager builds a Manager identity. A department is mandatory.
func NewManager(fullName, email, passwordHash string, departmentID int) (*User, error) {
	if err := validateBase(fullName, email, passwordHash); err != nil {
		return nil, err
	}
	if departmentID <= 0 {
		return nil, fmt.Errorf("%w: department is required for managers", ErrValidation)
	}
	return &User{
		FullName:     fullName,
		Email:        strings.TrimSpace(email),
		PasswordHash: passwordHash,
		Role:         RoleManager,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		Manager:      &ManagerProfile{DepartmentID: departmentID},
	}, nil
}

// NewAdmin builds an Admin identity. Admins are modelled as managers of the
// Administration department.
func NewAdmin(fullName, email, passwordHash string) (*User, error) {
	if err := validateBase(fullName, email, passwordHash); err != nil {
		return nil, err
	}
	return &User{
		FullName:     fullName,
		Email:        strings.TrimSpace(email),
		PasswordHash: passwordHash,
		Role:         RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		Manager: &ManagerProfile{
			DepartmentID: DefaultAdminDepartmentID,
			JobTitle:     "Administrator",
		},
	}, nil
}

// ManagerView returns the manager payload when the identity carries one.
func (u *User) ManagerView() (ManagerProfile, bool) {
	if u.Manager == nil {
		return ManagerProfile{}, false
	}
	return *u.Manager, true
}

// EmployeeView returns the employee payload when the identity carries one.
func (u *User) EmployeeView() (EmployeeProfile, bool) {
	if u.Employee == nil {
		return EmployeeProfile{}, false
	}
	return *u.Employee, true
}

// DepartmentID returns the identity's department, if any.
func (u *User) DepartmentID() (int, bool) {
	if u.Manager == nil {
		return 0, false
	}
	return u.Manager.DepartmentID, true
}

// JobTitle returns the job title from whichever profile the identity carries.
func (u *User) JobTitle() string {
	switch {
	case u.Employee != nil:
		return u.Employee.JobTitle
	case u.Manager != nil:
		return u.Manager.JobTitle
	}
	return ""
}

// ChangeRole moves the identity to newRole, reshaping the variant payload so
// that it always matches the role tag:
//
//   - to Manager: an existing manager profile keeps its department unless
//     departmentID overrides it; promoting an employee requires departmentID
//     in the same call and carries the job title over.
//   - to Admin: same shape as Manager, but the department falls back to the
//     Administration default instead of failing.
//   - to Employee: the manager profile is dropped entirely and an employee
//     profile takes its place, carrying the job title over.
func (u *User) ChangeRole(newRole Role, departmentID *int) error {
	switch newRole {
	case RoleManager, RoleAdmin:
		if u.Manager != nil {
			if departmentID != nil {
				if *departmentID <= 0 {
					return fmt.Errorf("%w: department must be positive", ErrValidation)
				}
				u.Manager.DepartmentID = *departmentID
			}
		} else {
			dept := 0
			switch {
			case departmentID != nil && *departmentID > 0:
				dept = *departmentID
			case newRole == RoleAdmin:
				dept = DefaultAdminDepartmentID
			default:
				return fmt.Errorf("%w: promoting to manager requires a department", ErrValidation)
			}
			title := ""
			if u.Employee != nil {
				title = u.Employee.JobTitle
			}
			u.Manager = &ManagerProfile{DepartmentID: dept, JobTitle: title}
			u.Employee = nil
		}
	case RoleEmployee:
		if u.Employee == nil {
			title := ""
			if u.Manager != nil {
				title = u.Manager.JobTitle
			}
			if title == "" {
				title = DefaultEmployeeJobTitle
			}
			u.Employee = &EmployeeProfile{JobTitle: title}
		}
		u.Manager = nil
	default:
		return fmt.Errorf("%w: unknown role %q", ErrValidation, newRole)
	}
	u.Role = newRole
	return nil
}

// SetJobTitle applies a job title to whichever profile the identity carries.
func (u *User) SetJobTitle(title string) {
	switch {
	case u.Employee != nil:
		u.Employee.JobTitle = title
	case u.Manager != nil:
		u.Manager.JobTitle = title
	}
}
