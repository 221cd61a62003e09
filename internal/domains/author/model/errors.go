package model

import "errors"

var (
	ErrAuthorNotFound = errors.New("author not found")
	ErrDuplicateName  = errors.New("an author with this name already exists")
	ErrNotOwner       = errors.New("author is owned by another user")
)

// ToErrorCode converts a domain error to an API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrDuplicateName):
		return "DUPLICATE_NAME"
	case errors.Is(err, ErrNotOwner):
		return "NOT_OWNER"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts a domain error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return 404
	case errors.Is(err, ErrDuplicateName):
		return 409
	case errors.Is(err, ErrNotOwner):
		return 403
	default:
		return 500
	}
}
