package domain

import "time"

// System represents a downstream system catalog entry.
type System struct {
	SystemKey   string    `json:"system_key"`
	Name        string    `json:"name"`
	Owner       string    `json:"owner,omitempty"`
	Criticality string    `json:"criticality"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidCriticalities contains all valid system criticality levels.
var ValidCriticalities = []string{"low", "medium", "high", "critical"}

// IsValidCriticality checks if a criticality level is valid.
func IsValidCriticality(level string) bool {
	for _, c := range ValidCriticalities {
		if c == level {
			return true
		}
	}
	return false
}
