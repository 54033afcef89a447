package handler

import (
	"errors"
	"net/http"

	"github.com/eventdash/eventdash-go/internal/api"
	"github.com/eventdash/eventdash-go/internal/session"
)

func isSessionError(err error) bool {
	return errors.Is(err, session.ErrInvalidToken) || errors.Is(err, session.ErrTokenExpired)
}

// statusFor picks the status of a page re-rendered after a failed remote
// call. 4xx answers from the API are passed on; anything else is a 502.
func statusFor(err error) int {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}
