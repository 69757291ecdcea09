package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jornada/internal/identifier"
	dErrors "jornada/pkg/domain-errors"
	"jornada/pkg/platform/httputil"
	"jornada/pkg/requestcontext"
)

// Service defines the identifier operations the handler needs.
type Service interface {
	Format(ctx context.Context, raw string) (identifier.Result, error)
	Check(ctx context.Context, raw string) (identifier.Result, error)
	CheckBatch(ctx context.Context, values []string) (*identifier.BatchResult, error)
	CheckCompany(ctx context.Context, draft identifier.CompanyDraft) (*identifier.IntakeResult, error)
	CheckEmployee(ctx context.Context, draft identifier.EmployeeDraft) (*identifier.IntakeResult, error)
}

// Handler wires identifier and intake endpoints to the identifier service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an identifier handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts identifier endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/identifiers/format", h.HandleFormat)
	r.Post("/identifiers/validate", h.HandleValidate)
	r.Post("/identifiers/batch", h.HandleBatch)
	r.Post("/companies/check", h.HandleCompanyCheck)
	r.Post("/employees/check", h.HandleEmployeeCheck)
}

// HandleFormat handles POST /identifiers/format, called on every change event
// of an identifier input.
func (h *Handler) HandleFormat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValueRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Format(ctx, *req.Value)
	if err != nil {
		h.writeServiceError(ctx, w, "identifier format failed", requestID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toFormatResponse(res))
}

// HandleValidate handles POST /identifiers/validate.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValueRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Check(ctx, *req.Value)
	if err != nil {
		h.writeServiceError(ctx, w, "identifier validation failed", requestID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toValidateResponse(res))
}

// HandleBatch handles POST /identifiers/batch.
func (h *Handler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[BatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.CheckBatch(ctx, req.Values)
	if err != nil {
		h.writeServiceError(ctx, w, "identifier batch failed", requestID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toBatchResponse(res))
}

// HandleCompanyCheck handles POST /companies/check.
func (h *Handler) HandleCompanyCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CompanyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.CheckCompany(ctx, req.CompanyDraft)
	if err != nil {
		h.writeServiceError(ctx, w, "company check failed", requestID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toIntakeResponse(res))
}

// HandleEmployeeCheck handles POST /employees/check.
func (h *Handler) HandleEmployeeCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EmployeeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.CheckEmployee(ctx, req.EmployeeDraft)
	if err != nil {
		h.writeServiceError(ctx, w, "employee check failed", requestID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toIntakeResponse(res))
}

// writeServiceError logs client mistakes at warn and everything else at error.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg, requestID string, err error) {
	level := slog.LevelError
	if dErrors.HasCode(err, dErrors.CodeValidation) {
		level = slog.LevelWarn
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestID,
		"error", err,
	)
	httputil.WriteError(w, err)
}
