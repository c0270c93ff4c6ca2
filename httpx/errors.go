package httpx

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest    = errors.New("httpx: bad request")
	ErrServerClosed  = errors.New("httpx: server closed")
	ErrNoDirectory   = errors.New("httpx: no base directory configured")
	ErrPathEscapes   = errors.New("httpx: file name escapes base directory")
	ErrNotText       = errors.New("httpx: file is not valid UTF-8 text")
	ErrMissingHeader = errors.New("httpx: required header missing")
	ErrUnknownMethod = errors.New("httpx: method not supported on route")
)

func badRequest(err error) error {
	return fmt.Errorf("%w: %w", ErrBadRequest, err)
}

// StatusForError maps an error from this package to the status code sent
// to the client.
func StatusForError(err error) int {
	switch {
	case err == nil:
		return 200
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrPathEscapes), errors.Is(err, ErrMissingHeader):
		return 400
	case errors.Is(err, ErrNoDirectory), errors.Is(err, ErrNotText), errors.Is(err, ErrUnknownMethod):
		return 404
	default:
		return 500
	}
}
