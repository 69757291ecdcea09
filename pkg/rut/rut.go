// Package rut formats and validates Chilean taxpayer identifiers (RUT).
//
// A RUT is a numeric body followed by a single verifier character, either a
// digit or the letter K, computed from the body with a weighted modulo-11
// checksum. Its canonical display form groups the body in triples from the
// right and appends the verifier after a hyphen:
//
//	123456785  ->  12.345.678-5
//
// Format and Validate are total functions: they accept any string, never
// panic and never return an error. Form handlers call Format on every change
// event and Validate on the formatted value to gate submission.
//
// Domain Purity: this package contains no I/O and no shared mutable state; every
// function is safe for concurrent use.
package rut

import "strings"

const (
	// MinLength is the shortest clean identifier Validate will consider. Shorter
	// inputs are rejected before the checksum runs.
	MinLength = 7

	groupSep    = '.'
	verifierSep = '-'
)

// Clean strips every character that is not an ASCII digit or k/K and
// uppercases the K. Order of the surviving characters is preserved.
func Clean(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; {
		case c >= '0' && c <= '9', c == 'K':
			b.WriteByte(c)
		case c == 'k':
			b.WriteByte('K')
		}
	}
	return b.String()
}

// Format returns the canonical display form of a possibly partial identifier.
//
// Inputs that clean to zero or one characters are returned clean, since there
// is nothing to split into body and verifier yet. Format is idempotent:
// Format(Format(s)) == Format(s).
func Format(raw string) string {
	clean := Clean(raw)
	if len(clean) <= 1 {
		return clean
	}
	body, verifier := split(clean)
	return groupBody(body) + string(verifierSep) + string(verifier)
}

// Validate reports whether candidate carries a verifier matching its body.
// Punctuation is ignored, so both "12.345.678-5" and "123456785" are accepted.
func Validate(candidate string) bool {
	clean := Clean(candidate)
	if len(clean) < MinLength {
		return false
	}
	body, declared := split(clean)
	expected, ok := CheckDigit(body)
	return ok && declared == expected
}

// CheckDigit computes the modulo-11 verifier for a body of ASCII digits.
// Digits are weighted right to left with 2,3,4,5,6,7 repeating. It returns
// false when body is empty or contains anything other than a digit.
func CheckDigit(body string) (byte, bool) {
	if body == "" {
		return 0, false
	}
	sum, weight := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		// only the residue matters; keeping it reduced bounds sum for any length
		sum = (sum + int(c-'0')*weight) % 11
		if weight == 7 {
			weight = 2
		} else {
			weight++
		}
	}
	switch r := 11 - sum; r {
	case 11:
		return '0', true
	case 10:
		return 'K', true
	default:
		return byte('0' + r), true
	}
}

// split separates a clean identifier of at least two characters into body and
// verifier.
func split(clean string) (string, byte) {
	n := len(clean) - 1
	return clean[:n], clean[n]
}

// groupBody inserts a separator every three characters counted from the right.
func groupBody(body string) string {
	lead := len(body) % 3
	if lead == 0 {
		lead = 3
	}
	if lead >= len(body) {
		return body
	}

	var b strings.Builder
	b.Grow(len(body) + len(body)/3)
	b.WriteString(body[:lead])
	for i := lead; i < len(body); i += 3 {
		b.WriteByte(groupSep)
		b.WriteString(body[i : i+3])
	}
	return b.String()
}
