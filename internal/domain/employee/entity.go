package employee

// Ref is the read-only view of an employee used to label and group payroll
// data. It is owned by the surrounding HR system.
type Ref struct {
	ID           string
	EmployeeCode string
	FirstName    string
	LastName     string
	Department   string
	Position     string
	IsActive     bool
}

// FullName returns "First Last", trimming a missing part.
func (r Ref) FullName() string {
	switch {
	case r.FirstName == "":
		return r.LastName
	case r.LastName == "":
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}
