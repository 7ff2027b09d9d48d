package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidTime     = "ERR_INVALID_DATETIME"
	ErrCodeInvalidRange    = "ERR_INVALID_INTERVAL"
	ErrCodeUnknownField    = "ERR_UNKNOWN_FIELD"
	ErrCodeContentType     = "ERR_INVALID_CONTENT_TYPE"
	ErrCodePayloadTooLarge = "ERR_PAYLOAD_TOO_LARGE"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
	ErrCodeTokenRevoked       = "ERR_TOKEN_REVOKED"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidTime:     http.StatusBadRequest,
	ErrCodeInvalidRange:    http.StatusBadRequest,
	ErrCodeUnknownField:    http.StatusBadRequest,
	ErrCodeContentType:     http.StatusUnsupportedMediaType,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainCodeMapping maps domain error codes to API error codes
var domainCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"TIMESHEET_NOT_FOUND":   ErrCodeNotFound,
	"ALREADY_EXISTS":        ErrCodeAlreadyExists,
	"FILE_ATTACHED":         ErrCodeConflict,
	"CONCURRENCY_CONFLICT":  ErrCodeConcurrencyConflict,
	"INVALID_STATE":         ErrCodeInvalidState,
	"UNAUTHORIZED":          ErrCodeUnauthorized,
	"INVALID_CREDENTIALS":   ErrCodeInvalidCredentials,
	"INVALID_TOKEN":         ErrCodeTokenInvalid,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"INVALID_DATETIME":      ErrCodeInvalidTime,
	"INVALID_INTERVAL":      ErrCodeInvalidRange,
	"UNKNOWN_FIELD":         ErrCodeUnknownField,
	"UNKNOWN_DOCTYPE":       ErrCodeInvalidInput,
	"INVALID_NAME":          ErrCodeInvalidInput,
	"INVALID_ACTIVITY_TYPE": ErrCodeInvalidInput,
	"INVALID_FILE_NAME":     ErrCodeInvalidInput,
	"INVALID_FILE_SIZE":     ErrCodeInvalidInput,
	"INVALID_SESSION_ID":    ErrCodeInvalidInput,
	"INVALID_STORAGE_KEY":   ErrCodeInvalidInput,
	"INVALID_API_KEY":       ErrCodeInvalidInput,
	"INVALID_SECRET":        ErrCodeInvalidInput,
	"INVALID_USER":          ErrCodeInvalidInput,
	"INVALID_CONTENT_TYPE":  ErrCodeContentType,
	"FILE_TOO_LARGE":        ErrCodePayloadTooLarge,
	"VALIDATION_ERROR":      ErrCodeValidation,
	"INTERNAL_ERROR":        ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format or unknown are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
