package platformerrors

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError_CarriesRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	err := NewError(ctx, LayerDomain, ErrorTypeNotFound, "directory not found", nil, "abc")

	assert.Equal(t, "req-123", err.GetRequestID())
	assert.Equal(t, "abc", err.GetUUID())
	assert.Equal(t, "[domain][NOT_FOUND][abc] directory not found", err.Error())
}

func TestAsError_PreservesTypeAndFields(t *testing.T) {
	ctx := context.Background()
	inner := NewValidationError(ctx, LayerDomain, "invalid batch", []FieldError{{Field: "action", Message: "action is required"}}, "v1")

	wrapped := AsError(ctx, LayerHandler, inner, "apply media batch")
	require.NotNil(t, wrapped)
	assert.Equal(t, ErrorTypeValidation, wrapped.Type)
	assert.Equal(t, "v1", wrapped.UUID)
	assert.Len(t, wrapped.Fields, 1)
	assert.True(t, IsErrorType(wrapped, ErrorTypeValidation))
}

func TestAsError_PlainErrorBecomesInternal(t *testing.T) {
	wrapped := AsError(context.Background(), LayerRepository, errors.New("boom"), "query failed")
	assert.Equal(t, ErrorTypeInternal, wrapped.Type)
	assert.Nil(t, AsError(context.Background(), LayerRepository, nil, "noop"))
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      int
	}{
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeCycleDetected, http.StatusConflict},
		{ErrorTypeConflict, http.StatusConflict},
		{ErrorTypeStorage, http.StatusBadGateway},
		{ErrorTypeTooLarge, http.StatusRequestEntityTooLarge},
		{ErrorTypeDatabaseError, http.StatusInternalServerError},
		{ErrorType("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorTypeToHTTPStatus(tt.errorType))
		})
	}
}
