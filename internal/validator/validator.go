package validator

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"accessgate/internal/domain"
)

var (
	employeeIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
	systemKeyRegex  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	validEmployeeStatuses = []interface{}{"active", "suspended", "terminated"}
	validGrantRoles       = []interface{}{"read", "write", "admin", "owner"}
	validCriticalities    = []interface{}{"low", "medium", "high", "critical"}
)

// requiredColumns mirrors the detector's signatures; the file-level check
// runs even when the caller supplies the table type explicitly.
var requiredColumns = map[domain.TableType][]string{
	domain.TableEmployees: {"employee_id", "email", "full_name"},
	domain.TableGrants:    {"employee_id", "system_key", "role"},
	domain.TableSystems:   {"system_key", "name"},
}

// Validator provides file-level and row-level validation for uploads.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateFile checks a parsed file before processing begins so structurally
// wrong data fails fast. Returns ok plus a human-readable reason when not ok.
func (v *Validator) ValidateFile(rows []domain.ParsedRow, table domain.TableType, ext string) (bool, string) {
	if len(rows) == 0 {
		return false, "file contains no records"
	}
	required, ok := requiredColumns[table]
	if !ok {
		return false, fmt.Sprintf("unknown table type: %s", table)
	}
	var missing []string
	for _, col := range required {
		if _, present := rows[0][col]; !present {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return false, fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return true, ""
}

// ValidateRow validates a single row against the rules of its table type.
func (v *Validator) ValidateRow(table domain.TableType, row domain.ParsedRow) error {
	switch table {
	case domain.TableEmployees:
		return v.validateEmployee(row)
	case domain.TableGrants:
		return v.validateGrant(row)
	case domain.TableSystems:
		return v.validateSystem(row)
	default:
		return fmt.Errorf("unknown table type: %s", table)
	}
}

func (v *Validator) validateEmployee(row domain.ParsedRow) error {
	e := domain.Employee{
		EmployeeID: row["employee_id"],
		Email:      row["email"],
		FullName:   row["full_name"],
		Department: row["department"],
		Status:     row["status"],
	}
	if e.Status == "" {
		e.Status = "active"
	}
	return validation.ValidateStruct(&e,
		validation.Field(&e.EmployeeID,
			validation.Required.Error("employee_id_required"),
			validation.Match(employeeIDRegex).Error("invalid_employee_id_format"),
		),
		validation.Field(&e.Email,
			validation.Required.Error("email_required"),
			is.Email.Error("invalid_email_format"),
		),
		validation.Field(&e.FullName,
			validation.Required.Error("full_name_required"),
		),
		validation.Field(&e.Status,
			validation.In(validEmployeeStatuses...).Error("invalid_status"),
		),
	)
}

func (v *Validator) validateGrant(row domain.ParsedRow) error {
	g := domain.Grant{
		EmployeeID: row["employee_id"],
		SystemKey:  row["system_key"],
		Role:       row["role"],
		GrantedBy:  row["granted_by"],
	}
	err := validation.ValidateStruct(&g,
		validation.Field(&g.EmployeeID,
			validation.Required.Error("employee_id_required"),
			validation.Match(employeeIDRegex).Error("invalid_employee_id_format"),
		),
		validation.Field(&g.SystemKey,
			validation.Required.Error("system_key_required"),
			validation.Match(systemKeyRegex).Error("invalid_system_key_format"),
		),
		validation.Field(&g.Role,
			validation.Required.Error("role_required"),
			validation.In(validGrantRoles...).Error("invalid_role"),
		),
	)
	if err != nil {
		return err
	}

	if raw := row["expires_at"]; raw != "" {
		if _, parseErr := ParseGrantExpiry(raw); parseErr != nil {
			return validation.Errors{
				"expires_at": validation.NewError("invalid_expires_at", "expires_at must be an RFC3339 timestamp or YYYY-MM-DD date"),
			}
		}
	}
	return nil
}

func (v *Validator) validateSystem(row domain.ParsedRow) error {
	s := domain.System{
		SystemKey:   row["system_key"],
		Name:        row["name"],
		Owner:       row["owner"],
		Criticality: row["criticality"],
	}
	if s.Criticality == "" {
		s.Criticality = "medium"
	}
	return validation.ValidateStruct(&s,
		validation.Field(&s.SystemKey,
			validation.Required.Error("system_key_required"),
			validation.Match(systemKeyRegex).Error("invalid_system_key_format"),
		),
		validation.Field(&s.Name,
			validation.Required.Error("name_required"),
		),
		validation.Field(&s.Criticality,
			validation.In(validCriticalities...).Error("invalid_criticality"),
		),
	)
}

// ParseGrantExpiry parses the expires_at column, accepting RFC3339 timestamps
// and bare dates.
func ParseGrantExpiry(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", raw)
}

// ConvertValidationErrors converts ozzo validation errors to domain RowErrors.
func ConvertValidationErrors(fileName string, rowNum int, err error) []domain.RowError {
	var errors []domain.RowError

	if ve, ok := err.(validation.Errors); ok {
		for field, fieldErr := range ve {
			errors = append(errors, domain.RowError{
				FileName: fileName,
				Row:      rowNum,
				Field:    field,
				Reason:   fieldErr.Error(),
			})
		}
	} else if err != nil {
		errors = append(errors, domain.RowError{
			FileName: fileName,
			Row:      rowNum,
			Reason:   err.Error(),
		})
	}

	return errors
}
