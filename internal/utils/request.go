package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"shopapi/internal/utils/response"

	"github.com/go-playground/validator/v10"
)

func DecodeJSONBody(r *http.Request, dest any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}

	defer r.Body.Close()

	if len(body) == 0 {
		return errors.New("request body cannot be empty")
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	return nil
}

// ParseAndValidate decodes the JSON body into dest and validates it, writing
// the 400 response itself. Returns false if the handler should stop.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {
	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request body", slog.String("error", err.Error()), slog.String("endpoint", r.URL.Path))
		response.WriteJson(w, http.StatusBadRequest, response.GeneralError(err))

		return false
	}

	if err := validate.Struct(dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)

			return false
		}

		slog.Error("Unexpected validation error", slog.String("error", err.Error()))
		response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("invalid input data")))

		return false
	}

	return true
}
