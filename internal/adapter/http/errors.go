package http

import (
	"errors"
	"net/http"

	consentDomain "lendpact-backend/internal/domain/consent"
	loanDomain "lendpact-backend/internal/domain/loan"
	registryDomain "lendpact-backend/internal/domain/registry"
	"lendpact-backend/internal/infrastructure/monitoring"

	"github.com/labstack/echo/v4"
)

// statusOf translates business errors into HTTP status codes. Anything
// unrecognized is treated as a server fault.
func statusOf(err error) int {
	switch {
	case errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, consentDomain.ErrNotFound),
		errors.Is(err, registryDomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, loanDomain.ErrNotParty),
		errors.Is(err, loanDomain.ErrNotLender),
		errors.Is(err, consentDomain.ErrNotFlagHolder):
		return http.StatusForbidden
	case errors.Is(err, loanDomain.ErrInvalidTransition),
		errors.Is(err, consentDomain.ErrAlreadyConsented):
		return http.StatusConflict
	case errors.Is(err, loanDomain.ErrInvalidInput),
		errors.Is(err, loanDomain.ErrInsufficientPayment),
		errors.Is(err, loanDomain.ErrNotYetDue),
		errors.Is(err, loanDomain.ErrProofRejected),
		errors.Is(err, loanDomain.ErrProofExpired),
		errors.Is(err, consentDomain.ErrWindowExpired):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeUsecaseErr(c echo.Context, err error) error {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		monitoring.Error(err)
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
