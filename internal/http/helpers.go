package http

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"kakei/internal/core"
	"kakei/internal/services"
)

// sanitizeInput removes control characters other than tab and newlines and
// trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// statusFor maps a tracker error to the HTTP status reported to clients.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, services.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNotConfirmed):
		return http.StatusConflict
	case errors.Is(err, services.ErrSyncNotConfigured),
		errors.Is(err, services.ErrNotifyNotConfigured),
		errors.Is(err, services.ErrNothingToSync):
		return http.StatusPreconditionFailed
	case errors.Is(err, services.ErrSyncFailed),
		errors.Is(err, services.ErrNotifyFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// templateFuncs are available to every page template.
var templateFuncs = template.FuncMap{
	"amount": core.FormatAmount,
}
