// Package errors provides standardized error types for the IWMS services.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodePropertyNotFound      ErrorCode = "PROPERTY_NOT_FOUND"
	ErrCodeLeaseNotFound         ErrorCode = "LEASE_NOT_FOUND"
	ErrCodeFloorNotFound         ErrorCode = "FLOOR_NOT_FOUND"
	ErrCodeBuildingNotFound      ErrorCode = "BUILDING_NOT_FOUND"
	ErrCodeWorkOrderNotFound     ErrorCode = "WORK_ORDER_NOT_FOUND"
	ErrCodeCertificationNotFound ErrorCode = "CERTIFICATION_NOT_FOUND"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeIndexNotFound     ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeGatewayRequestFailed ErrorCode = "GATEWAY_REQUEST_FAILED"
	ErrCodeFixtureLoadFailed    ErrorCode = "FIXTURE_LOAD_FAILED"
	ErrCodeInvalidParameter     ErrorCode = "INVALID_PARAMETER"
	ErrCodeRenderFailed         ErrorCode = "RENDER_FAILED"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Server-style payload errors
// ==========================

// ResponsePayload is the JSON body an upstream service returns on failure.
type ResponsePayload struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ResponseError is a failed upstream call that carried a structured payload.
// Message is the transport-level description; Payload.Message, when present,
// is what the upstream wants users to see.
type ResponseError struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Payload    ResponsePayload `json:"payload"`
}

func (e *ResponseError) Error() string {
	if e.Payload.Message != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Payload.Message)
	}
	return e.Message
}

// NewResponseError builds a ResponseError with the conventional transport message.
func NewResponseError(statusCode int, payload ResponsePayload) *ResponseError {
	return &ResponseError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("Request failed with status code %d", statusCode),
		Payload:    payload,
	}
}

// ==========================
// 3. Error Constructors
// ==========================

// NewNotFoundError creates a non-retryable lookup error for the given code.
func NewNotFoundError(code ErrorCode, resource, id string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   fmt.Sprintf("%s not found", resource),
		Details:   fmt.Sprintf("id: %s", id),
		Retryable: false,
		Metadata:  map[string]interface{}{"id": id},
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("operation: %s", operation),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search error.
func NewSearchQueryFailedError(index string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Search query error",
		Details:   fmt.Sprintf("index: %s, error: %s", index, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexNotFoundError creates a non-retryable index error.
func NewIndexNotFoundError(index string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Search index not found",
		Details:   fmt.Sprintf("index: %s", index),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGatewayRequestFailedError creates a retryable gateway transport error.
func NewGatewayRequestFailedError(gateway string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGatewayRequestFailed,
		Message:   fmt.Sprintf("Gateway '%s' request failed", gateway),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewFixtureLoadFailedError creates a non-retryable fixture error.
func NewFixtureLoadFailedError(name string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFixtureLoadFailed,
		Message:   "Fixture data could not be loaded",
		Details:   fmt.Sprintf("fixture: %s, error: %s", name, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidParameterError creates a non-retryable parameter error.
func NewInvalidParameterError(param, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidParameter,
		Message:   fmt.Sprintf("Invalid parameter '%s'", param),
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"parameter": param},
		Timestamp: time.Now().UTC(),
	}
}

// NewRenderFailedError creates a render failure error for a dashboard page.
func NewRenderFailedError(page string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRenderFailed,
		Message:   "Page could not be rendered",
		Details:   fmt.Sprintf("page: %s, error: %s", page, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Classification helpers
// ==========================

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeGatewayRequestFailed:
		return 3

	case ErrCodeQueryTimeout,
		ErrCodeRenderFailed:
		return 1

	default:
		return 0
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasSuffix(codeStr, "NOT_FOUND") && !strings.Contains(codeStr, "INDEX"):
		return "NOT_FOUND"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY_"):
		return "DATABASE"
	case strings.Contains(codeStr, "GATEWAY"):
		return "GATEWAY"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "RENDER") || strings.Contains(codeStr, "FIXTURE"):
		return "INTERNAL"
	default:
		return "OTHER"
	}
}

// HTTPStatus maps an error code to the status used when an error escapes the
// Result envelope (parameter validation, unknown routes).
func HTTPStatus(code ErrorCode) int {
	switch GetErrorCategory(code) {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "VALIDATION":
		return http.StatusBadRequest
	case "GATEWAY":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
