package platformerrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HTTPErrorResponse represents the standard error response format.
type HTTPErrorResponse struct {
	Error *HTTPErrorDetail `json:"error"`
}

// HTTPErrorDetail contains error details for HTTP responses.
type HTTPErrorDetail struct {
	Message   string       `json:"message"`
	Type      string       `json:"type"`
	Code      string       `json:"code,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Fields    []FieldError `json:"fields,omitempty"`
}

// WriteHTTPError writes a PlatformError as an HTTP response.
// It maps the error type to an appropriate HTTP status code and formats the response.
func WriteHTTPError(c *gin.Context, err *PlatformError, log zerolog.Logger) {
	if err == nil {
		WriteInternalError(c, "unknown error")
		return
	}

	LogError(log, err)

	c.AbortWithStatusJSON(ErrorTypeToHTTPStatus(err.Type), HTTPErrorResponse{
		Error: &HTTPErrorDetail{
			Message:   err.Message,
			Type:      errorTypeToString(err.Type),
			Code:      err.UUID,
			RequestID: err.RequestID,
			Fields:    err.Fields,
		},
	})
}

// WriteError writes a generic error as an HTTP response.
// If the error is a PlatformError, it will be handled appropriately.
// Otherwise, it will be treated as an internal error.
func WriteError(c *gin.Context, err error, log zerolog.Logger) {
	if err == nil {
		WriteInternalError(c, "unknown error")
		return
	}

	if platformErr := GetPlatformError(err); platformErr != nil {
		WriteHTTPError(c, platformErr, log)
		return
	}

	log.Error().Err(err).Msg("unhandled error")
	WriteInternalError(c, err.Error())
}

// WriteValidationError writes a 400 Bad Request response.
func WriteValidationError(c *gin.Context, message string, fields ...FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, HTTPErrorResponse{
		Error: &HTTPErrorDetail{
			Message: message,
			Type:    "validation_error",
			Fields:  fields,
		},
	})
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, HTTPErrorResponse{
		Error: &HTTPErrorDetail{
			Message: message,
			Type:    "unauthorized_error",
		},
	})
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, HTTPErrorResponse{
		Error: &HTTPErrorDetail{
			Message: message,
			Type:    "internal_error",
		},
	})
}

// errorTypeToString converts an ErrorType to a snake_case string for API responses.
func errorTypeToString(t ErrorType) string {
	switch t {
	case ErrorTypeNotFound:
		return "not_found_error"
	case ErrorTypeValidation:
		return "validation_error"
	case ErrorTypeConflict:
		return "conflict_error"
	case ErrorTypeCycleDetected:
		return "cycle_detected_error"
	case ErrorTypeUnauthorized:
		return "unauthorized_error"
	case ErrorTypeForbidden:
		return "forbidden_error"
	case ErrorTypeTooLarge:
		return "payload_too_large_error"
	case ErrorTypeStorage:
		return "storage_error"
	case ErrorTypeDatabaseError:
		return "database_error"
	case ErrorTypeInternal:
		fallthrough
	default:
		return "internal_error"
	}
}
