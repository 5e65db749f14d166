package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/report"
	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/user"
	"github.com/cmlabs-hris/payroll-report-engine/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var missing *report.MissingParameterError
	if errors.As(err, &missing) {
		details := make(map[string]string, len(missing.Params))
		for _, p := range missing.Params {
			details[p] = p + " is required"
		}
		BadRequest(w, missing.Error(), details)
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, user.ErrRequesterIDRequired):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Report domain errors
	case errors.Is(err, report.ErrReportNotFound):
		NotFound(w, "Report not found")
	case errors.Is(err, report.ErrReportAlreadyFinalized):
		Conflict(w, "Report already finalized")
	case errors.Is(err, report.ErrUnknownReportKind):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
