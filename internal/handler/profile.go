package handler

import (
	"net/http"

	"github.com/osse101/HabitQuest_Go/internal/directory"
	"github.com/osse101/HabitQuest_Go/internal/domain"
)

// CreateProfileRequest is the onboarding form
type CreateProfileRequest struct {
	Name        string `json:"name" validate:"required,max=40"`
	Pin         string `json:"pin" validate:"required,pin"`
	Age         int    `json:"age" validate:"gte=0,lte=120"`
	Gender      string `json:"gender" validate:"omitempty,oneof=M F O m f o"`
	Avatar      string `json:"avatar" validate:"max=64"`
	CustomSport string `json:"customSport" validate:"max=40"`
}

// LoginRequest carries the PIN typed on the selection screen
type LoginRequest struct {
	Pin string `json:"pin" validate:"required"`
}

// ProfileSummary is a directory entry without its PIN
type ProfileSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func summarize(e directory.Entry) ProfileSummary {
	return ProfileSummary{ID: e.ID, Name: e.Name, Avatar: e.Avatar}
}

// ProfileHandler serves the profile directory
type ProfileHandler struct {
	dir     directory.Service
	avatars func(id string) bool
}

// NewProfileHandler creates the handler. avatars may be nil to accept any avatar id.
func NewProfileHandler(dir directory.Service, avatars func(id string) bool) *ProfileHandler {
	return &ProfileHandler{dir: dir, avatars: avatars}
}

// HandleList lists profiles for the selection screen
func (h *ProfileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.dir.List(r.Context())
	if err != nil {
		respondServiceError(w, r, "List profiles", err)
		return
	}
	out := make([]ProfileSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, summarize(e))
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleCreate registers a new profile and seeds its document
func (h *ProfileHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create profile"); err != nil {
		return
	}
	if req.Avatar != "" && h.avatars != nil && !h.avatars(req.Avatar) {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: map[string]string{"avatar": "Unknown avatar"},
		})
		return
	}

	entry, err := h.dir.Create(r.Context(), directory.CreateRequest{
		Name:        req.Name,
		Pin:         req.Pin,
		Age:         req.Age,
		Gender:      domain.ParseGender(req.Gender),
		Avatar:      req.Avatar,
		CustomSport: req.CustomSport,
	})
	if err != nil {
		respondServiceError(w, r, "Create profile", err)
		return
	}
	respondJSON(w, http.StatusCreated, summarize(entry))
}

// HandleLogin checks the PIN of a profile
func (h *ProfileHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
		return
	}
	id := profileID(r)
	if err := h.dir.VerifyPin(r.Context(), id, req.Pin); err != nil {
		respondServiceError(w, r, "Login", err)
		return
	}
	entry, err := h.dir.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Login", err)
		return
	}
	respondJSON(w, http.StatusOK, summarize(entry))
}

// HandleDelete removes a profile and its progress
func (h *ProfileHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.dir.Delete(r.Context(), profileID(r)); err != nil {
		respondServiceError(w, r, "Delete profile", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgProfileDeleted})
}
