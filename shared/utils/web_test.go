package utils

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValidate(t *testing.T) {
	type TestStruct struct {
		Field1 string `json:"field1" validate:"required"`
		Field2 int    `json:"field2"`
	}

	tests := []struct {
		name        string
		requestBody string
		expectedMsg string
	}{
		{name: "Valid JSON and Validation", requestBody: `{"field1": "value", "field2": 123}`},
		{name: "Valid JSON and Validation [2]", requestBody: `{"field1": "value"}`},
		{name: "Invalid JSON", requestBody: `{"field1": "value", "field2": 123`, expectedMsg: "Body is invalid json"},
		{name: "Missing Required Field", requestBody: `{"field2": 123}`, expectedMsg: "Required fields missing"},
		{name: "Empty Body", requestBody: "", expectedMsg: "Body is invalid json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", bytes.NewReader([]byte(tt.requestBody)))

			err := DecodeValidate(req.Body, &TestStruct{})

			if tt.expectedMsg == "" {
				assert.NoError(t, err)
				return
			}
			e, ok := errors.As[*errors.ValidationError](err)
			require.True(t, ok, "Error should be ValidationError")
			assert.Equal(t, tt.expectedMsg, e.Message)
		})
	}
}

func TestWriteErrorAndStatusCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", &errors.ValidationError{Message: "Title is required"}, http.StatusBadRequest, "Title is required"},
		{"permission", &errors.PermissionError{Message: "Viewers do not have permission to create tasks"}, http.StatusForbidden, "Viewers do not have permission to create tasks"},
		{"unauthenticated", &errors.PermissionError{Message: "Not authorized", Unauthenticated: true}, http.StatusUnauthorized, "Not authorized"},
		{"not found", &errors.NotFoundError{Message: "Card not found"}, http.StatusNotFound, "Card not found"},
		{"conflict", &errors.ConflictError{Message: "Card is no longer in the source list"}, http.StatusConflict, "Card is no longer in the source list"},
		{"store", &errors.StoreError{Op: "create card", Err: fmt.Errorf("connection reset")}, http.StatusInternalServerError, "failed to create card"},
		{"wrapped store", fmt.Errorf("ctx: %w", &errors.StoreError{Op: "move card"}), http.StatusInternalServerError, "failed to move card"},
		{"plain", fmt.Errorf("dial tcp: secret host"), http.StatusInternalServerError, "internal error"},
		{"with status", &errors.ErrorWithStatusCode{Message: "Too many requests", StatusCode: http.StatusTooManyRequests}, http.StatusTooManyRequests, "Too many requests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteErrorAndStatusCode(rr, tt.err)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rr.Body.String()))
		})
	}
}
