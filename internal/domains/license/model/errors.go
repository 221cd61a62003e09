package model

import (
	"errors"
	"net/http"
)

var ErrLicenseNotFound = errors.New("license not found")

func ToErrorCode(err error) string {
	if errors.Is(err, ErrLicenseNotFound) {
		return "LICENSE_NOT_FOUND"
	}
	return "INTERNAL_ERROR"
}

func ToHTTPStatus(err error) int {
	if errors.Is(err, ErrLicenseNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
