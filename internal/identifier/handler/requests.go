package handler

import (
	"strings"

	"jornada/internal/identifier"
	dErrors "jornada/pkg/domain-errors"
)

// ValueRequest is the body of POST /identifiers/format and /identifiers/validate.
type ValueRequest struct {
	Value *string `json:"value"`
}

// Normalize is a no-op: the raw keystrokes are the input being formatted.
func (r *ValueRequest) Normalize() {}

// Validate requires the value field to be present; an empty string is allowed.
func (r *ValueRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Value == nil {
		return dErrors.New(dErrors.CodeValidation, "value is required")
	}
	return nil
}

// BatchRequest is the body of POST /identifiers/batch.
type BatchRequest struct {
	Values []string `json:"values"`
}

func (r *BatchRequest) Normalize() {}

// Validate rejects a missing list. Size limits are enforced by the service.
func (r *BatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Values == nil {
		return dErrors.New(dErrors.CodeValidation, "values is required")
	}
	return nil
}

// CompanyRequest is the body of POST /companies/check.
type CompanyRequest struct {
	identifier.CompanyDraft
}

// Normalize trims surrounding whitespace from every text field.
func (r *CompanyRequest) Normalize() {
	if r == nil {
		return
	}
	d := &r.CompanyDraft
	for _, f := range []*string{&d.LegalName, &d.RUT, &d.Alias, &d.Giro, &d.Address, &d.Commune, &d.City, &d.Branch} {
		*f = strings.TrimSpace(*f)
	}
}

// Validate only rejects a missing body; field rules are the intake gate's job
// and are reported in the response, not as an error.
func (r *CompanyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}

// EmployeeRequest is the body of POST /employees/check.
type EmployeeRequest struct {
	identifier.EmployeeDraft
}

// Normalize trims surrounding whitespace and lowercases the email.
func (r *EmployeeRequest) Normalize() {
	if r == nil {
		return
	}
	d := &r.EmployeeDraft
	for _, f := range []*string{&d.RUT, &d.FirstName, &d.LastName, &d.Position, &d.HireDate, &d.Email, &d.Phone, &d.Commune} {
		*f = strings.TrimSpace(*f)
	}
	d.Email = strings.ToLower(d.Email)
}

func (r *EmployeeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}
