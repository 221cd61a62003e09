package model

import (
	"errors"
	"net/http"
)

var (
	ErrStoryNotFound    = errors.New("story not found")
	ErrNotOwner         = errors.New("story belongs to a different author")
	ErrSelfReference    = errors.New("a story cannot reference itself")
	ErrPrecededCycle    = errors.New("preceded_by chain would form a cycle")
	ErrRelationNotFound = errors.New("referenced story is not published")
	ErrLicenseInactive  = errors.New("license is not active")
	ErrStoryReferenced  = errors.New("story is referenced by another story")
)

func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrStoryNotFound):
		return "STORY_NOT_FOUND"
	case errors.Is(err, ErrNotOwner):
		return "STORY_FORBIDDEN"
	case errors.Is(err, ErrSelfReference):
		return "STORY_SELF_REFERENCE"
	case errors.Is(err, ErrPrecededCycle):
		return "STORY_CHAPTER_CYCLE"
	case errors.Is(err, ErrRelationNotFound):
		return "STORY_RELATION_NOT_FOUND"
	case errors.Is(err, ErrLicenseInactive):
		return "LICENSE_INACTIVE"
	case errors.Is(err, ErrStoryReferenced):
		return "STORY_REFERENCED"
	default:
		return "INTERNAL_ERROR"
	}
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrStoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, ErrSelfReference),
		errors.Is(err, ErrPrecededCycle),
		errors.Is(err, ErrRelationNotFound),
		errors.Is(err, ErrLicenseInactive):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrStoryReferenced):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
