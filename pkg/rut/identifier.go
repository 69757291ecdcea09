package rut

import (
	dErrors "jornada/pkg/domain-errors"
)

// RUT is a validated taxpayer identifier.
//
// Invariants:
//   - Body is non-empty and all digits
//   - Verifier is the modulo-11 check character of Body
//   - The clean form is at least MinLength characters
//
// The zero value represents "no identifier" and is reported by IsZero.
type RUT struct {
	body     string
	verifier byte
}

var (
	// ErrTooShort indicates the identifier has fewer than MinLength significant characters.
	ErrTooShort = dErrors.New(dErrors.CodeValidation, "rut must have at least 7 digits including the verifier")
	// ErrCheckDigit indicates the verifier does not match the body.
	ErrCheckDigit = dErrors.New(dErrors.CodeValidation, "rut verifier does not match")
)

// Parse builds a RUT from raw user input. It accepts exactly the inputs for
// which Validate returns true.
func Parse(raw string) (RUT, error) {
	clean := Clean(raw)
	if len(clean) < MinLength {
		return RUT{}, ErrTooShort
	}
	body, declared := split(clean)
	expected, ok := CheckDigit(body)
	if !ok || declared != expected {
		return RUT{}, ErrCheckDigit
	}
	return RUT{body: body, verifier: declared}, nil
}

// String returns the canonical form, e.g. "12.345.678-5".
func (r RUT) String() string {
	if r.IsZero() {
		return ""
	}
	return groupBody(r.body) + string(verifierSep) + string(r.verifier)
}

// Compact returns the identifier without punctuation, e.g. "123456785".
func (r RUT) Compact() string {
	if r.IsZero() {
		return ""
	}
	return r.body + string(r.verifier)
}

// IsZero returns true if this is the zero value (uninitialized).
func (r RUT) IsZero() bool {
	return r.body == ""
}

// MarshalText encodes the canonical form.
func (r RUT) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses any accepted spelling. Empty text decodes to the zero value.
func (r *RUT) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*r = RUT{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
