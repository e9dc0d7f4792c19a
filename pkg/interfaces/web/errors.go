package web

// errors.go maps service errors to HTTP responses.
//
// Validation failures answer 422 with the consolidated messages, incomplete settings
// answer 400, unknown BOMs 404 and undo without a processed part list 409.
// Anything else is a defect: it is logged with the request id and answers 500.

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/vsinha/prettybom/pkg/application/services"
	"github.com/vsinha/prettybom/pkg/application/services/processing"
	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/domain/repositories"
)

// Error codes returned in ErrorResponse.Code
const (
	CodeBadRequest       = "bad_request"
	CodeNotFound         = "not_found"
	CodeValidationFailed = "validation_failed"
	CodeConfiguration    = "configuration_error"
	CodeConflict         = "conflict"
	CodeInternal         = "internal_error"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error    string         `json:"error"`
	Code     string         `json:"code"`
	Messages []string       `json:"messages,omitempty"`
	Invalid  map[string]int `json:"invalid,omitempty"`
}

// statusOf returns the HTTP status and error code for a service error
func statusOf(err error) (int, string) {
	var validationErr *processing.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, CodeValidationFailed
	case errors.Is(err, repositories.ErrBOMNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, entities.ErrNothingToUndo):
		return http.StatusConflict, CodeConflict
	case services.IsConfigurationError(err):
		return http.StatusBadRequest, CodeConfiguration
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// respondError writes err as an ErrorResponse with the status it maps to.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusOf(err)
	response := ErrorResponse{Error: err.Error(), Code: code}

	var validationErr *processing.ValidationError
	if errors.As(err, &validationErr) {
		response.Messages = validationErr.Report.Messages()
		response.Invalid = make(map[string]int)
		for category, count := range validationErr.Report.InvalidCounts() {
			response.Invalid[string(category)] = count
		}
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		response.Error = "internal error"
	}

	writeJSONStatus(w, status, response)
}

// writeError writes a client error that did not come from the service.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSONStatus(w, status, ErrorResponse{Error: message, Code: code})
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
