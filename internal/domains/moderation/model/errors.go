package model

import (
	"errors"
	"net/http"
)

var (
	ErrContentNotFound = errors.New("content item not found")
	ErrInvalidTarget   = errors.New("exactly one of story or entry must be named")
)

func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrContentNotFound):
		return "CONTENT_NOT_FOUND"
	case errors.Is(err, ErrInvalidTarget):
		return "INVALID_TARGET"
	default:
		return "INTERNAL_ERROR"
	}
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrContentNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTarget):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
