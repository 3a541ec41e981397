package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-rentify/internal/model"
	"go-rentify/pkg/apierror"
)

// responder writes the JSON envelope shared by every handler. Unclassified
// error text is only sent to clients when exposeDetails is set.
type responder struct {
	exposeDetails bool
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
	})
}

func (rs responder) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	} else if resp, ok := model.LookupErrorResponse(err); ok {
		status = resp.Status
		body.Code = resp.Code
		body.Message = resp.Message
	} else {
		slog.Error("unhandled error in writeError", "error", err.Error())
		if rs.exposeDetails {
			body.Details = err.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierror.BadRequest("invalid JSON body", "")
	}
	return nil
}
