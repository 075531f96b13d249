package domain

// EmployeeProfile is the directory entry returned by login and by the
// employee listing used for Activity-Incharge selection.
type EmployeeProfile struct {
	PersonnelNo string `json:"personnelNo"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Directorate string `json:"directorate"`
	Division    string `json:"division"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

// LoginParams carries employee login credentials.
type LoginParams struct {
	PersonnelNo string `json:"personnelNo"`
	Password    string `json:"password"`
}
