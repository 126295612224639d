package models

// FieldNames is the column order of the employee dataset.
var FieldNames = []string{ //nolint:gochecknoglobals // fixed header
	"first_name",
	"last_name",
	"job_title",
	"department",
	"email",
	"address",
	"phone_number",
	"salary",
	"password",
}

// EmployeeRecord represents one synthetic employee row.
type EmployeeRecord struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	JobTitle    string `json:"job_title"`
	Department  string `json:"department"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	Salary      string `json:"salary"`
	Password    string `json:"password"`
}

// Values returns the record fields in the order of FieldNames.
func (e EmployeeRecord) Values() []string {
	return []string{
		e.FirstName,
		e.LastName,
		e.JobTitle,
		e.Department,
		e.Email,
		e.Address,
		e.PhoneNumber,
		e.Salary,
		e.Password,
	}
}

// Map replaces every field with fn(field).
func (e *EmployeeRecord) Map(fn func(string) string) {
	for _, field := range []*string{
		&e.FirstName,
		&e.LastName,
		&e.JobTitle,
		&e.Department,
		&e.Email,
		&e.Address,
		&e.PhoneNumber,
		&e.Salary,
		&e.Password,
	} {
		*field = fn(*field)
	}
}
