package handler

import (
	"time"

	"jornada/internal/identifier"
	"jornada/pkg/rut"
)

// FormatResponse is the HTTP response for POST /identifiers/format.
type FormatResponse struct {
	Formatted string `json:"formatted"`
	Valid     bool   `json:"valid"`
}

// ValidateResponse is the HTTP response for POST /identifiers/validate.
// RUT is present only for valid identifiers, Reason only for invalid ones.
type ValidateResponse struct {
	Valid     bool     `json:"valid"`
	Formatted string   `json:"formatted"`
	Compact   string   `json:"compact"`
	RUT       *rut.RUT `json:"rut,omitempty"`
	Reason    string   `json:"reason,omitempty"`
}

// BatchItem is one entry of BatchResponse.
type BatchItem struct {
	Value     string `json:"value"`
	Formatted string `json:"formatted"`
	Valid     bool   `json:"valid"`
	Reason    string `json:"reason,omitempty"`
}

// BatchResponse is the HTTP response for POST /identifiers/batch.
type BatchResponse struct {
	Results    []BatchItem `json:"results"`
	ValidCount int         `json:"valid_count"`
}

// FieldErrorResponse names a rejected form field.
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// IntakeResponse is the HTTP response for the intake check endpoints.
type IntakeResponse struct {
	Accepted  bool                 `json:"accepted"`
	RUT       string               `json:"rut"`
	Errors    []FieldErrorResponse `json:"errors"`
	CheckedAt time.Time            `json:"checked_at"`
}

func toFormatResponse(res identifier.Result) *FormatResponse {
	return &FormatResponse{Formatted: res.Formatted, Valid: res.Valid}
}

func toValidateResponse(res identifier.Result) *ValidateResponse {
	resp := &ValidateResponse{Valid: res.Valid, Formatted: res.Formatted, Compact: res.Compact, Reason: res.Reason}
	if res.Valid {
		resp.RUT = &res.RUT
	}
	return resp
}

func toBatchResponse(res *identifier.BatchResult) *BatchResponse {
	items := make([]BatchItem, 0, len(res.Results))
	for _, r := range res.Results {
		items = append(items, BatchItem{Value: r.Value, Formatted: r.Formatted, Valid: r.Valid, Reason: r.Reason})
	}
	return &BatchResponse{Results: items, ValidCount: res.ValidCount}
}

func toIntakeResponse(res *identifier.IntakeResult) *IntakeResponse {
	errs := make([]FieldErrorResponse, 0, len(res.Errors))
	for _, fe := range res.Errors {
		errs = append(errs, FieldErrorResponse{Field: fe.Field, Message: fe.Message})
	}
	return &IntakeResponse{Accepted: res.Accepted, RUT: res.RUT, Errors: errs, CheckedAt: res.CheckedAt}
}
