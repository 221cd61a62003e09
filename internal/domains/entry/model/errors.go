package model

import (
	"errors"
	"net/http"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrNotOwner      = errors.New("entry belongs to a different author")
)

func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrEntryNotFound):
		return "ENTRY_NOT_FOUND"
	case errors.Is(err, ErrNotOwner):
		return "ENTRY_FORBIDDEN"
	default:
		return "INTERNAL_ERROR"
	}
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotOwner):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
