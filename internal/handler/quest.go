package handler

import (
	"net/http"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/progression"
)

// AddQuestRequest is the custom quest form
type AddQuestRequest struct {
	Txt         string `json:"txt" validate:"required,max=120"`
	Cat         string `json:"cat" validate:"required,statkey"`
	XP          int    `json:"xp" validate:"gte=0,lte=10000"`
	Tokens      int    `json:"tokens" validate:"gte=0,lte=1000"`
	MinLevel    int    `json:"minLevel" validate:"gte=0,lte=100"`
	Frequency   string `json:"frequency" validate:"frequency"`
	MaxProgress int    `json:"maxProgress" validate:"gte=0,lte=100"`
}

// HandleAddQuest adds a custom quest
func (h *GameHandler) HandleAddQuest(w http.ResponseWriter, r *http.Request) {
	var req AddQuestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add quest"); err != nil {
		return
	}
	res, err := h.svc.AddQuest(r.Context(), profileID(r), progression.QuestSpec{
		Txt:         req.Txt,
		Cat:         domain.StatKey(req.Cat),
		XP:          req.XP,
		Tokens:      req.Tokens,
		MinLevel:    req.MinLevel,
		Frequency:   domain.Frequency(req.Frequency),
		MaxProgress: req.MaxProgress,
	})
	if err != nil {
		respondServiceError(w, r, "Add quest", err)
		return
	}
	respondJSON(w, http.StatusCreated, res)
}

// HandleDeleteQuest removes a quest
func (h *GameHandler) HandleDeleteQuest(w http.ResponseWriter, r *http.Request) {
	id, ok := questID(w, r)
	if !ok {
		return
	}
	res, err := h.svc.DeleteQuest(r.Context(), profileID(r), id)
	respondResult(w, r, "Delete quest", res, err)
}

// HandleToggleQuest completes or reopens a quest
func (h *GameHandler) HandleToggleQuest(w http.ResponseWriter, r *http.Request) {
	id, ok := questID(w, r)
	if !ok {
		return
	}
	res, err := h.svc.ToggleQuest(r.Context(), profileID(r), id)
	respondResult(w, r, "Toggle quest", res, err)
}

// HandleAdvanceQuest records one step of a multi-step quest
func (h *GameHandler) HandleAdvanceQuest(w http.ResponseWriter, r *http.Request) {
	id, ok := questID(w, r)
	if !ok {
		return
	}
	res, err := h.svc.AdvanceQuest(r.Context(), profileID(r), id)
	respondResult(w, r, "Advance quest", res, err)
}
