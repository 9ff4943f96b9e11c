package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/idforge/identity-server/internal/apierrors"
)

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Fields  []apierrors.FieldError `json:"fields,omitempty"`
}

// WriteError maps an error onto the HTTP boundary. Errors outside the
// business taxonomy become opaque 500s; the cause stays in logs only.
func WriteError(w http.ResponseWriter, err error) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		apiErr = apierrors.NewErrInternalServerError(err)
	}

	WriteJSON(w, apiErr.HTTPStatus, errorResponse{
		Code:    apiErr.Code,
		Message: apiErr.Error(),
		Fields:  apiErr.Fields,
	})
}

// WriteJSON writes body as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
