package domain

import (
	"errors"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"

	ErrUnauthorized  = errors.New("missing or invalid session")
	ErrForbidden     = errors.New("admin access required")
	ErrBadRequest    = errors.New("invalid request")
	ErrUpstreamFetch = errors.New("upstream source unavailable")
)
