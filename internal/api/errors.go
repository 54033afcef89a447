package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Error is a non-2xx answer from the remote API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the remote API.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Message returns the text worth showing a user for err.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Unable to reach the server, please try again"
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func newError(resp *http.Response) *Error {
	e := &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	b, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(b) == 0 {
		return e
	}

	var body errorBody
	if err := json.Unmarshal(b, &body); err == nil {
		switch {
		case body.Message != "":
			e.Message = body.Message
		case body.Error != "":
			e.Message = body.Error
		}
		return e
	}

	if text := strings.TrimSpace(string(b)); text != "" && len(text) < 200 {
		e.Message = text
	}
	return e
}
