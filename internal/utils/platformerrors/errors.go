package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type requestIDKey struct{}

// WithRequestID stores the request id so errors created downstream can carry it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// getRequestIDFromContext extracts request ID from context
func getRequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return requestID
	}
	return ""
}

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeNotFound      ErrorType = "NOT_FOUND"
	ErrorTypeValidation    ErrorType = "VALIDATION"
	ErrorTypeConflict      ErrorType = "CONFLICT"
	ErrorTypeCycleDetected ErrorType = "CYCLE_DETECTED"
	ErrorTypeTooLarge      ErrorType = "PAYLOAD_TOO_LARGE"
	ErrorTypeUnauthorized  ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden     ErrorType = "FORBIDDEN"
	ErrorTypeStorage       ErrorType = "STORAGE"
	ErrorTypeInternal      ErrorType = "INTERNAL"
	ErrorTypeDatabaseError ErrorType = "DATABASE_ERROR"
)

// Layer represents the application layer where the error occurred
type Layer string

const (
	LayerRepository     Layer = "repository"
	LayerDomain         Layer = "domain"
	LayerHandler        Layer = "handler"
	LayerRoute          Layer = "route"
	LayerInfrastructure Layer = "infrastructure"
)

// FieldError pins a validation failure to a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PlatformError represents an error with context and metadata
type PlatformError struct {
	UUID      string
	Type      ErrorType
	Message   string
	Err       error
	Context   map[string]any
	Fields    []FieldError
	RequestID string
	Layer     Layer
	Timestamp time.Time
}

// Error implements the error interface
func (e *PlatformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s][%s][%s] %s: %v", e.Layer, e.Type, e.UUID, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s][%s][%s] %s", e.Layer, e.Type, e.UUID, e.Message)
}

// Unwrap returns the underlying error
func (e *PlatformError) Unwrap() error {
	return e.Err
}

// GetErrorType returns the error type
func (e *PlatformError) GetErrorType() ErrorType {
	return e.Type
}

// GetRequestID returns the request ID
func (e *PlatformError) GetRequestID() string {
	return e.RequestID
}

// GetUUID returns the error UUID
func (e *PlatformError) GetUUID() string {
	return e.UUID
}

// NewError creates a new PlatformError with the specified parameters
func NewError(ctx context.Context, layer Layer, errorType ErrorType, message string, err error, customUUID string) *PlatformError {
	return NewErrorWithContext(ctx, layer, errorType, message, err, customUUID, nil)
}

// NewErrorWithContext creates a new PlatformError with additional context fields
func NewErrorWithContext(ctx context.Context, layer Layer, errorType ErrorType, message string, err error, customUUID string, contextFields map[string]any) *PlatformError {
	errorUUID := customUUID
	if errorUUID == "" {
		errorUUID = "auto-generated-uuid"
	}

	errorContext := make(map[string]any, len(contextFields))
	for k, v := range contextFields {
		errorContext[k] = v
	}

	return &PlatformError{
		UUID:      errorUUID,
		Type:      errorType,
		Message:   message,
		Err:       err,
		RequestID: getRequestIDFromContext(ctx),
		Layer:     layer,
		Timestamp: time.Now().UTC(),
		Context:   errorContext,
	}
}

// NewValidationError builds a VALIDATION error carrying per-field failures.
func NewValidationError(ctx context.Context, layer Layer, message string, fields []FieldError, customUUID string) *PlatformError {
	err := NewError(ctx, layer, ErrorTypeValidation, message, nil, customUUID)
	err.Fields = append([]FieldError(nil), fields...)
	return err
}

// AsError wraps an error with layer context
func AsError(ctx context.Context, layer Layer, err error, message string) *PlatformError {
	if err == nil {
		return nil
	}

	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		wrapped := NewError(ctx, layer, platformErr.Type, fmt.Sprintf("%s: %s", message, platformErr.Message), platformErr, platformErr.UUID)
		wrapped.Fields = platformErr.Fields
		return wrapped
	}

	return NewError(ctx, layer, ErrorTypeInternal, message, err, "")
}

// GetPlatformError returns the outermost PlatformError in the chain, if any.
func GetPlatformError(err error) *PlatformError {
	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		return platformErr
	}
	return nil
}

// ErrorTypeToHTTPStatus maps error types to HTTP status codes
func ErrorTypeToHTTPStatus(errorType ErrorType) int {
	switch errorType {
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeConflict, ErrorTypeCycleDetected:
		return http.StatusConflict
	case ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case ErrorTypeForbidden:
		return http.StatusForbidden
	case ErrorTypeTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrorTypeStorage:
		return http.StatusBadGateway
	case ErrorTypeDatabaseError:
		return http.StatusInternalServerError
	case ErrorTypeInternal:
		fallthrough
	default:
		return http.StatusInternalServerError
	}
}

// IsErrorType checks if an error is a PlatformError with the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}

	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		return platformErr.Type == errorType
	}

	return false
}

// LogError logs a platform error with proper structure
func LogError(logger zerolog.Logger, err *PlatformError) {
	if err == nil {
		return
	}

	event := logger.Error()
	if err.Type == ErrorTypeValidation || err.Type == ErrorTypeNotFound {
		event = logger.Warn()
	}
	event = event.
		Str("error_uuid", err.UUID).
		Str("error_type", string(err.Type)).
		Str("layer", string(err.Layer)).
		Time("timestamp_utc", err.Timestamp)

	if err.RequestID != "" {
		event = event.Str("request_id", err.RequestID)
	}

	for k, v := range err.Context {
		event = event.Interface(k, v)
	}

	if len(err.Fields) > 0 {
		event = event.Interface("fields", err.Fields)
	}

	if err.Err != nil {
		event = event.Err(err.Err)
	}

	event.Msg(err.Message)
}
