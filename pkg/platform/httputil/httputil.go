// Package httputil holds the JSON plumbing shared by HTTP handlers: response
// writing, domain error translation and request decoding.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	dErrors "jornada/pkg/domain-errors"
)

// MaxBodyBytes bounds request bodies read by DecodeAndPrepare.
const MaxBodyBytes = 1 << 20

// Preparable is implemented by request bodies. Normalize trims and canonicalizes
// input in place; Validate rejects malformed requests with a domain error.
type Preparable interface {
	Normalize()
	Validate() error
}

// preparablePtr constrains *T to implement Preparable.
type preparablePtr[T any] interface {
	*T
	Preparable
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into a JSON error envelope. Domain errors keep their
// code and message; anything else, and every internal error, is reported as
// internal_error without a description.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	description := ""
	if de, ok := dErrors.As(err); ok {
		code = de.Code
		description = de.Message
	}

	status := dErrors.ToHTTPStatus(code)
	if status == http.StatusInternalServerError {
		code = dErrors.CodeInternal
		description = ""
	}
	WriteJSON(w, status, errorResponse{Error: string(code), ErrorDescription: description})
}

// DecodeAndPrepare decodes the request body into a new T, normalizes it and
// validates it. The body must hold exactly one JSON value. On failure it writes the error response itself and returns false.
func DecodeAndPrepare[T any, PT preparablePtr[T]](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req := PT(new(T))

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(req); err != nil {
		logger.WarnContext(ctx, "failed to decode request body",
			"request_id", requestID,
			"error", err,
		)
		msg := "invalid JSON body"
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			msg = "request body too large"
		} else if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, msg))
		return nil, false
	}
	if dec.More() {
		logger.WarnContext(ctx, "trailing data after request body",
			"request_id", requestID,
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request body must contain a single JSON object"))
		return nil, false
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		logger.WarnContext(ctx, "request validation failed",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, err)
		return nil, false
	}
	return (*T)(req), true
}
