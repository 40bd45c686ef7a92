package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/HabitQuest_Go/internal/logger"
)

// URL parameter names shared with the router
const (
	ParamProfileID = "id"
	ParamQuestID   = "questID"
	ParamItemID    = "itemID"
)

// DecodeAndValidateRequest decodes a JSON body into req and validates it.
// On error the response has already been written and the handler should return.
//
//	var req AddQuestRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Add quest"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// profileID returns the {id} URL parameter
func profileID(r *http.Request) string {
	return chi.URLParam(r, ParamProfileID)
}

// questID parses the {questID} URL parameter. When it is not a number a 400
// has been written and ok is false.
func questID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, ParamQuestID), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidQuestID)
		return 0, false
	}
	return id, true
}
