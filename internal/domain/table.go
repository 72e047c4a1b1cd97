package domain

// TableType identifies the target schema a file's rows are mapped to.
type TableType string

const (
	TableEmployees TableType = "employees"
	TableGrants    TableType = "grants"
	TableSystems   TableType = "systems"
)

// ValidTableTypes contains all table types the detector can identify.
var ValidTableTypes = []TableType{TableEmployees, TableGrants, TableSystems}

// IsValidTableType checks if a table type is valid.
func IsValidTableType(table string) bool {
	for _, t := range ValidTableTypes {
		if string(t) == table {
			return true
		}
	}
	return false
}

// ParsedRow is a single parsed record: column name -> raw string value.
// Rows are ephemeral; they are consumed by the validator and processor
// and never persisted in this form.
type ParsedRow map[string]string
