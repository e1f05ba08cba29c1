package handlers

import (
	"net/http"

	"shopapi/internal/errors"
	"shopapi/internal/utils/response"

	"github.com/google/uuid"
)

// parsePathUUID extracts a UUID path parameter, writing the 400 itself.
func parsePathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		response.Error(w, errors.BadRequestError("Invalid "+name).WithError(err))

		return uuid.Nil, false
	}

	return id, true
}
