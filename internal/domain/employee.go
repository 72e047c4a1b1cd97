package domain

import "time"

// Employee represents an employee entity in the system.
type Employee struct {
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Department string    `json:"department,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ValidEmployeeStatuses contains all valid employee statuses.
var ValidEmployeeStatuses = []string{"active", "suspended", "terminated"}

// IsValidEmployeeStatus checks if an employee status is valid.
func IsValidEmployeeStatus(status string) bool {
	for _, s := range ValidEmployeeStatuses {
		if s == status {
			return true
		}
	}
	return false
}
