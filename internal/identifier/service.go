// Package identifier serves taxpayer identifier formatting and validation to
// the form collaborators: per-keystroke formatting, submit-time validation,
// batch checks and the company/employee intake gate.
package identifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"jornada/internal/identifier/metrics"
	dErrors "jornada/pkg/domain-errors"
	"jornada/pkg/requestcontext"
	"jornada/pkg/rut"
)

const (
	kindCompany  = "company"
	kindEmployee = "employee"

	defaultMaxInputBytes = 64
	defaultBatchMax      = 100
)

// Service evaluates identifiers and intake drafts. It holds no per-request
// state and is safe for concurrent use.
type Service struct {
	logger        *slog.Logger
	metrics       *metrics.Metrics
	validate      *validator.Validate
	maxInputBytes int
	batchMax      int
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLimits bounds single values (bytes) and batch requests (values).
// Non-positive limits keep the defaults.
func WithLimits(maxInputBytes, batchMax int) Option {
	return func(s *Service) {
		if maxInputBytes > 0 {
			s.maxInputBytes = maxInputBytes
		}
		if batchMax > 0 {
			s.batchMax = batchMax
		}
	}
}

// New constructs a Service.
func New(opts ...Option) (*Service, error) {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	if err := rut.RegisterValidation(v); err != nil {
		return nil, fmt.Errorf("register rut validation: %w", err)
	}

	s := &Service{
		logger:        slog.New(slog.DiscardHandler),
		validate:      v,
		maxInputBytes: defaultMaxInputBytes,
		batchMax:      defaultBatchMax,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Format runs one controlled-input cycle: format the raw keystrokes, then
// validate the formatted value.
func (s *Service) Format(ctx context.Context, raw string) (Result, error) {
	if err := s.checkInput(raw); err != nil {
		return Result{}, err
	}
	s.metrics.IncrementFormats()
	return s.evaluate(raw), nil
}

// Check validates a completed value. An invalid identifier is a normal result,
// not an error; errors are reserved for oversized input.
func (s *Service) Check(ctx context.Context, raw string) (Result, error) {
	if err := s.checkInput(raw); err != nil {
		return Result{}, err
	}
	res := s.evaluate(raw)
	s.logger.DebugContext(ctx, "identifier checked",
		"request_id", requestcontext.RequestID(ctx),
		"valid", res.Valid,
		"reason", res.Reason,
	)
	return res, nil
}

// CheckBatch validates values in order.
func (s *Service) CheckBatch(ctx context.Context, values []string) (*BatchResult, error) {
	if len(values) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "values must not be empty")
	}
	if len(values) > s.batchMax {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("values must contain at most %d entries", s.batchMax))
	}
	for i, v := range values {
		if len(v) > s.maxInputBytes {
			return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("values[%d] must be at most %d bytes", i, s.maxInputBytes))
		}
	}

	s.metrics.ObserveBatchSize(len(values))
	out := &BatchResult{Results: make([]Result, 0, len(values))}
	for _, v := range values {
		res := s.evaluate(v)
		if res.Valid {
			out.ValidCount++
		}
		out.Results = append(out.Results, res)
	}

	s.logger.InfoContext(ctx, "identifier batch checked",
		"request_id", requestcontext.RequestID(ctx),
		"count", len(values),
		"valid_count", out.ValidCount,
	)
	return out, nil
}

// CheckCompany applies the company lobby submit gate.
func (s *Service) CheckCompany(ctx context.Context, draft CompanyDraft) (*IntakeResult, error) {
	draft.RUT = rut.Format(draft.RUT)
	return s.intake(ctx, kindCompany, draft.RUT, &draft)
}

// CheckEmployee applies the dashboard submit gate: a valid identifier and both
// name fields are required before the employee may be sent.
func (s *Service) CheckEmployee(ctx context.Context, draft EmployeeDraft) (*IntakeResult, error) {
	draft.RUT = rut.Format(draft.RUT)
	return s.intake(ctx, kindEmployee, draft.RUT, &draft)
}

func (s *Service) intake(ctx context.Context, kind, canonical string, draft any) (*IntakeResult, error) {
	res := &IntakeResult{RUT: canonical, CheckedAt: requestcontext.Now(ctx)}

	err := s.validate.StructCtx(ctx, draft)
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
		res.Accepted = true
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			res.Errors = append(res.Errors, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
	default:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to validate draft")
	}

	s.metrics.IncrementIntake(kind, res.Accepted)
	s.logger.InfoContext(ctx, "intake checked",
		"request_id", requestcontext.RequestID(ctx),
		"kind", kind,
		"accepted", res.Accepted,
		"rejected_fields", len(res.Errors),
	)
	return res, nil
}

func (s *Service) evaluate(raw string) Result {
	res := Result{Value: raw, Formatted: rut.Format(raw)}

	parsed, err := rut.Parse(res.Formatted)
	switch {
	case err == nil:
		res.RUT = parsed
		res.Valid = true
		res.Compact = parsed.Compact()
	case errors.Is(err, rut.ErrTooShort):
		res.Reason = ReasonTooShort
		res.Compact = rut.Clean(res.Formatted)
	default:
		res.Reason = ReasonCheckDigit
		res.Compact = rut.Clean(res.Formatted)
	}

	s.metrics.IncrementValidation(res.Valid)
	return res
}

func (s *Service) checkInput(raw string) error {
	if len(raw) > s.maxInputBytes {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("value must be at most %d bytes", s.maxInputBytes))
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + " must be a valid email address"
	case "datetime":
		return fe.Field() + " must be a date formatted as YYYY-MM-DD"
	case rut.Tag:
		return fe.Field() + " is not a valid RUT"
	default:
		return fe.Field() + " is invalid"
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}
