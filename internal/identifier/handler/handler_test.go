package handler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jornada/internal/identifier"
	"jornada/pkg/testutil"
)

func newIdentifierRouter(t *testing.T, svc Service) http.Handler {
	t.Helper()
	if svc == nil {
		identifierService, err := identifier.New(identifier.WithLimits(64, 5))
		require.NoError(t, err)
		svc = identifierService
	}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r
}

func TestHandleFormat(t *testing.T) {
	router := newIdentifierRouter(t, nil)

	tests := []struct {
		name      string
		value     string
		formatted string
		valid     bool
	}{
		{"empty input", "", "", false},
		{"single keystroke", "1", "1", false},
		{"partial body", "12345", "1.234-5", false},
		{"complete with wrong verifier", "12345678k", "12.345.678-K", false},
		{"complete valid with K", "16543210k", "16.543.210-K", true},
		{"reformat canonical", "11.111.111-1", "11.111.111-1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/identifiers/format", map[string]string{"value": tt.value})
			rr := testutil.DoRequest(router, req)

			require.Equal(t, http.StatusOK, rr.Code)
			resp := testutil.UnmarshalResponse[FormatResponse](t, rr)
			assert.Equal(t, tt.formatted, resp.Formatted)
			assert.Equal(t, tt.valid, resp.Valid)
		})
	}
}

func TestHandleFormat_BadRequests(t *testing.T) {
	router := newIdentifierRouter(t, nil)

	t.Run("missing value field", func(t *testing.T) {
		req := testutil.NewRequestWithBody(t, http.MethodPost, "/identifiers/format", `{}`)
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		req := testutil.NewRequestWithBody(t, http.MethodPost, "/identifiers/format", `{"value":`)
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("oversized value", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/identifiers/format", map[string]string{"value": strings.Repeat("1", 65)})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	})
}

func TestHandleValidate(t *testing.T) {
	router := newIdentifierRouter(t, nil)

	t.Run("invalid identifier is not an HTTP error", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/identifiers/validate", map[string]string{"value": "123"})
		rr := testutil.DoRequest(router, req)

		require.Equal(t, http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[ValidateResponse](t, rr)
		assert.False(t, resp.Valid)
		assert.Equal(t, "12-3", resp.Formatted)
		assert.Equal(t, identifier.ReasonTooShort, resp.Reason)
		assert.Nil(t, resp.RUT)
		assert.NotContains(t, rr.Body.String(), `"rut"`)
	})

	t.Run("checksum mismatch names the reason", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/identifiers/validate", map[string]string{"value": "7608642-1"})
		rr := testutil.DoRequest(router, req)

		require.Equal(t, http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[ValidateResponse](t, rr)
		assert.False(t, resp.Valid)
		assert.Equal(t, identifier.ReasonCheckDigit, resp.Reason)
	})

	t.Run("valid identifier returns both forms", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/identifiers/validate", map[string]string{"value": "7608642-7"})
		rr := testutil.DoRequest(router, req)

		require.Equal(t, http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[ValidateResponse](t, rr)
		assert.True(t, resp.Valid)
		assert.Equal(t, "7.608.642-7", resp.Formatted)
		assert.Equal(t, "76086427", resp.Compact)
		assert.Empty(t, resp.Reason)
		require.NotNil(t, resp.RUT)
		assert.Equal(t, "7.608.642-7", resp.RUT.String())
		assert.Contains(t, rr.Body.String(), `"rut":"7.608.642-7"`)
	})
}

func TestHandleBatch(t *testing.T) {
	router := newIdentifierRouter(t, nil)

	t.Run("mixed batch", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/identifiers/batch", map[string][]string{
			"values": {"11.111.111-1", "11.111.111-0", ""},
		})
		rr := testutil.DoRequest(router, req)

		require.Equal(t, http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[BatchResponse](t, rr)
		require.Len(t, resp.Results, 3)
		assert.Equal(t, 1, resp.ValidCount)
		assert.Equal(t, "11.111.111-0", resp.Results[1].Value)
		assert.False(t, resp.Results[1].Valid)
	})

	t.Run("missing values", func(t *testing.T) {
		req := testutil.NewRequestWithBody(t, http.MethodPost, "/identifiers/batch", `{}`)
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	})

	t.Run("empty list", func(t *testing.T) {
		req := testutil.NewRequestWithBody(t, http.MethodPost, "/identifiers/batch", `{"values":[]}`)
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	})

	t.Run("above configured maximum", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/identifiers/batch", map[string][]string{
			"values": {"1", "2", "3", "4", "5", "6"},
		})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	})
}

func TestHandleEmployeeCheck(t *testing.T) {
	router := newIdentifierRouter(t, nil)

	t.Run("accepted draft", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/employees/check", map[string]string{
			"rut":           " 12345678-5 ",
			"nombres":       "  Ana ",
			"apellidos":     "Rojas",
			"cargo":         "Contadora",
			"fecha_ingreso": " 2025-03-01 ",
			"email":         "Ana.Rojas@Example.CL",
		})
		rr := testutil.DoRequest(router, req)

		require.Equal(t, http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[IntakeResponse](t, rr)
		assert.True(t, resp.Accepted)
		assert.Equal(t, "12.345.678-5", resp.RUT)
		assert.Empty(t, resp.Errors)
	})

	t.Run("rejected draft lists fields", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/employees/check", map[string]string{
			"rut":     "12.345.678-0",
			"nombres": "Ana",
		})
		rr := testutil.DoRequest(router, req)

		require.Equal(t, http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[IntakeResponse](t, rr)
		assert.False(t, resp.Accepted)
		assert.ElementsMatch(t, []FieldErrorResponse{
			{Field: "rut", Message: "rut is not a valid RUT"},
			{Field: "apellidos", Message: "apellidos is required"},
			{Field: "cargo", Message: "cargo is required"},
			{Field: "fecha_ingreso", Message: "fecha_ingreso is required"},
		}, resp.Errors)
	})
}

func TestHandleCompanyCheck(t *testing.T) {
	router := newIdentifierRouter(t, nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/companies/check", map[string]string{
		"nombre_legal": "Comercial Andes SpA",
		"rut":          "76.086.428-5",
		"giro":         "Comercio al por menor",
	})
	rr := testutil.DoRequest(router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	resp := testutil.UnmarshalResponse[IntakeResponse](t, rr)
	assert.True(t, resp.Accepted)
	assert.Equal(t, "76.086.428-5", resp.RUT)
}

// failingService satisfies Service through the embedded nil pointer; only
// CheckEmployee is ever called on it.
type failingService struct {
	*identifier.Service
}

func (failingService) CheckEmployee(context.Context, identifier.EmployeeDraft) (*identifier.IntakeResult, error) {
	return nil, errors.New("validator exploded")
}

func TestHandleEmployeeCheck_InternalError(t *testing.T) {
	router := newIdentifierRouter(t, failingService{})

	req := testutil.NewJSONRequest(t, http.MethodPost, "/employees/check", map[string]string{"rut": "1"})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusAndError(t, rr, http.StatusInternalServerError, "internal_error")
	assert.NotContains(t, rr.Body.String(), "exploded")
}
