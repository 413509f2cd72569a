package domain

// Department groups managers. Departments are read-only from this service's
// point of view; they are provisioned by the seeder.
type Department struct {
	ID   int    `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

// DefaultAdminDepartmentID is the Administration department every Admin
// belongs to by default.
const DefaultAdminDepartmentID = 1

// SeedDepartments is the initial department set provisioned at bootstrap.
func SeedDepartments() []Department {
	return []Department{
		{ID: DefaultAdminDepartmentID, Name: "Administration"},
		{ID: 2, Name: "Human Resources"},
		{ID: 3, Name: "IT Support"},
	}
}
