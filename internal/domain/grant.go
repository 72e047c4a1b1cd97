package domain

import "time"

// Grant represents an access grant binding an employee to a downstream system.
type Grant struct {
	EmployeeID string     `json:"employee_id"`
	SystemKey  string     `json:"system_key"`
	Role       string     `json:"role"`
	GrantedBy  string     `json:"granted_by,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ValidGrantRoles contains all valid grant roles.
var ValidGrantRoles = []string{"read", "write", "admin", "owner"}

// IsValidGrantRole checks if a grant role is valid.
func IsValidGrantRole(role string) bool {
	for _, r := range ValidGrantRoles {
		if r == role {
			return true
		}
	}
	return false
}
