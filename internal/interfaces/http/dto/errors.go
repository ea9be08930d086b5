package dto

import (
	"net/http"

	"github.com/shelfmaster/backend/internal/domain/shared"
)

// Transport-level error codes not produced by the domain
const (
	ErrCodeInternal    = "INTERNAL_ERROR"
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeInvalidJSON = "INVALID_JSON"
	ErrCodeValidation  = "VALIDATION_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeNotFound:        http.StatusNotFound,
	shared.CodeAlreadyExists:   http.StatusConflict,
	shared.CodeConflict:        http.StatusConflict,
	shared.CodeInvalidInput:    http.StatusBadRequest,
	shared.CodeInvalidState:    http.StatusUnprocessableEntity,
	shared.CodePolicyViolation: http.StatusUnprocessableEntity,
	shared.CodeUnauthorized:    http.StatusUnauthorized,
	shared.CodeForbidden:       http.StatusForbidden,

	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeInternal:    http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to
// 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
