package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/flvvius/hackathon-sisc-2025/shared/logger"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// WriteErrorAndStatusCode writes err as plain text with the status its type
// maps to. Unclassified errors are logged and reported as 500.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	status := errors.StatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Log.Error("request failed", "error", err)
		if se, ok := errors.As[*errors.StoreError](err); ok {
			http.Error(w, se.Error(), status)
			return
		}
		if _, ok := errors.As[*errors.ErrorWithStatusCode](err); !ok {
			http.Error(w, "internal error", status)
			return
		}
	}
	http.Error(w, err.Error(), status)
}

// WriteJSON encodes body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request validation failed", "error", err)
		return &errors.ValidationError{Message: "Required fields missing"}
	}
	return nil
}

func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("request body decode failed", "error", err)
		return &errors.ValidationError{Message: "Body is invalid json"}
	}
	return nil
}
