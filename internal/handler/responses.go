package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// encode first so a marshal failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		logger.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and answers with the status and message it maps to
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(op+" failed", "error", err)
	} else {
		log.Debug(op+" rejected", "error", err, "status", status)
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		respondJSON(w, status, ValidationErrorResponse{Error: ErrMsgInvalidRequestSummary, Fields: FormatValidationError(err)})
		return
	}
	if status >= http.StatusInternalServerError {
		respondJSON(w, status, ErrorResponse{Error: msg, RequestID: logger.GetRequestID(r.Context())})
		return
	}
	respondError(w, status, msg)
}

// mapServiceError maps domain errors to HTTP statuses and user messages.
// Unknown errors become a generic 500 so internals never leak.
func mapServiceError(err error) (int, string) {
	var ve validator.ValidationErrors
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgUnknownError
	case errors.As(err, &ve):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary
	case errors.Is(err, domain.ErrLevelLocked):
		return http.StatusForbidden, ErrMsgLevelLocked
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired, ErrMsgNotEnoughTokens
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusConflict, ErrMsgAlreadyClaimed
	case errors.Is(err, domain.ErrNoBoxes):
		return http.StatusConflict, ErrMsgNoBoxes
	case errors.Is(err, domain.ErrEmptyQuestText):
		return http.StatusBadRequest, ErrMsgEmptyQuestText
	case errors.Is(err, domain.ErrInvalidPin):
		return http.StatusBadRequest, ErrMsgInvalidPin
	case errors.Is(err, domain.ErrPinMismatch):
		return http.StatusUnauthorized, ErrMsgPinMismatch
	case errors.Is(err, domain.ErrUnknownMinigameMode):
		return http.StatusBadRequest, ErrMsgUnknownMinigame
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, ErrMsgProfileNotFound
	case errors.Is(err, domain.ErrQuestNotFound):
		return http.StatusNotFound, ErrMsgQuestNotFound
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFound
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, ErrMsgResourceNotFound
	case errors.Is(err, domain.ErrStorageFailure):
		return http.StatusServiceUnavailable, ErrMsgCheckConnection
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// RespondServiceError is respondServiceError for callers outside this package
func RespondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	respondServiceError(w, r, "Request", err)
}
