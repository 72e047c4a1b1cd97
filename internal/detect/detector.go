// Package detect identifies which target record type an uploaded file
// contains by matching its column signature against the known tables.
package detect

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"accessgate/internal/domain"
)

var (
	// ErrUnknownTable is returned when no table signature matches the file.
	ErrUnknownTable = errors.New("detect: could not determine table type")

	// ErrAmbiguousTable is returned when more than one signature matches.
	ErrAmbiguousTable = errors.New("detect: file matches more than one table type")
)

// TableInfo describes one detectable table for discovery endpoints.
type TableInfo struct {
	Table           domain.TableType `json:"table_type"`
	Description     string           `json:"description"`
	RequiredColumns []string         `json:"required_columns"`
	OptionalColumns []string         `json:"optional_columns,omitempty"`
}

type signature struct {
	info   TableInfo
	sample []string
}

// signatures are ordered; detection itself is order-independent because an
// upload matching more than one signature is rejected as ambiguous.
var signatures = []signature{
	{
		info: TableInfo{
			Table:           domain.TableEmployees,
			Description:     "Employee directory records",
			RequiredColumns: []string{"employee_id", "email", "full_name"},
			OptionalColumns: []string{"department", "status"},
		},
		sample: []string{"E1001", "jane.doe@example.com", "Jane Doe", "Engineering", "active"},
	},
	{
		info: TableInfo{
			Table:           domain.TableGrants,
			Description:     "Access grants binding employees to downstream systems",
			RequiredColumns: []string{"employee_id", "system_key", "role"},
			OptionalColumns: []string{"granted_by", "expires_at"},
		},
		sample: []string{"E1001", "payroll", "read", "E2002", "2027-01-01T00:00:00Z"},
	},
	{
		info: TableInfo{
			Table:           domain.TableSystems,
			Description:     "Downstream system catalog entries",
			RequiredColumns: []string{"system_key", "name"},
			OptionalColumns: []string{"owner", "criticality"},
		},
		sample: []string{"payroll", "Payroll Processing", "E2002", "high"},
	},
}

// Detector inspects parsed rows and returns the table type they belong to.
// Detection is pure: the same input always yields the same result.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the table type for the given rows. It fails with
// ErrUnknownTable for empty input or an unrecognized column set and with
// ErrAmbiguousTable when the columns satisfy more than one signature.
func (d *Detector) Detect(rows []domain.ParsedRow) (domain.TableType, error) {
	if len(rows) == 0 {
		return "", fmt.Errorf("%w: file contains no rows", ErrUnknownTable)
	}

	columns := make(map[string]bool, len(rows[0]))
	for key := range rows[0] {
		columns[key] = true
	}

	var matches []domain.TableType
	for _, sig := range signatures {
		if hasAll(columns, sig.info.RequiredColumns) {
			matches = append(matches, sig.info.Table)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: columns %v", ErrUnknownTable, sortedKeys(columns))
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %v", ErrAmbiguousTable, matches)
	}
}

// SupportedTables lists every table type the detector can identify.
func (d *Detector) SupportedTables() []TableInfo {
	infos := make([]TableInfo, 0, len(signatures))
	for _, sig := range signatures {
		infos = append(infos, sig.info)
	}
	return infos
}

// Template returns a downloadable CSV template and its file name for the
// given table type.
func (d *Detector) Template(table domain.TableType) ([]byte, string, error) {
	for _, sig := range signatures {
		if sig.info.Table != table {
			continue
		}
		header := append(append([]string{}, sig.info.RequiredColumns...), sig.info.OptionalColumns...)
		var b strings.Builder
		b.WriteString(strings.Join(header, ","))
		b.WriteString("\n")
		b.WriteString(strings.Join(sig.sample[:len(header)], ","))
		b.WriteString("\n")
		return []byte(b.String()), fmt.Sprintf("%s_template.csv", table), nil
	}
	return nil, "", fmt.Errorf("%w: %s", ErrUnknownTable, table)
}

func hasAll(columns map[string]bool, required []string) bool {
	for _, col := range required {
		if !columns[col] {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
