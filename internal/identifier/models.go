package identifier

import (
	"time"

	"jornada/pkg/rut"
)

// Reasons an identifier failed validation.
const (
	ReasonTooShort   = "too_short"
	ReasonCheckDigit = "check_digit"
)

// Result is the outcome of formatting and validating one raw value.
// RUT is set only when Valid; Reason only when not.
type Result struct {
	Value     string
	Formatted string
	Compact   string
	Valid     bool
	RUT       rut.RUT
	Reason    string
}

// BatchResult holds per-value results in request order.
type BatchResult struct {
	Results    []Result
	ValidCount int
}

// CompanyDraft is a company (tenant) registration form as submitted from the
// company lobby, before it is sent to the backend.
type CompanyDraft struct {
	LegalName string `json:"nombre_legal" validate:"required,max=255"`
	RUT       string `json:"rut" validate:"required,max=20,rut"`
	Alias     string `json:"alias" validate:"max=100"`
	Giro      string `json:"giro" validate:"max=255"`
	Address   string `json:"direccion" validate:"max=255"`
	Commune   string `json:"comuna" validate:"max=100"`
	City      string `json:"ciudad" validate:"max=100"`
	Branch    string `json:"sucursal" validate:"max=100"`
}

// EmployeeDraft is an employee form as submitted from a company dashboard.
// HireDate uses the HTML date input format.
type EmployeeDraft struct {
	RUT       string `json:"rut" validate:"required,max=20,rut"`
	FirstName string `json:"nombres" validate:"required,max=100"`
	LastName  string `json:"apellidos" validate:"required,max=100"`
	Position  string `json:"cargo" validate:"required,max=100"`
	HireDate  string `json:"fecha_ingreso" validate:"required,datetime=2006-01-02"`
	Email     string `json:"email" validate:"omitempty,email,max=254"`
	Phone     string `json:"telefono" validate:"max=20"`
	Commune   string `json:"comuna" validate:"max=100"`
}

// FieldError reports one rejected form field by its wire name.
type FieldError struct {
	Field   string
	Message string
}

// IntakeResult is the submit-gate decision for a draft. RUT is always the
// canonical form of the submitted identifier, valid or not, so the form can
// display it back.
type IntakeResult struct {
	Accepted  bool
	RUT       string
	Errors    []FieldError
	CheckedAt time.Time
}
