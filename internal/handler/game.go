package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/HabitQuest_Go/internal/game"
)

// MinigameWinRequest reports one won round
type MinigameWinRequest struct {
	Game string `json:"game" validate:"required,max=32"`
	Mode string `json:"mode" validate:"max=16"`
}

// GameHandler serves per-profile game actions
type GameHandler struct {
	svc game.Service
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(svc game.Service) *GameHandler {
	return &GameHandler{svc: svc}
}

// HandleState returns the profile state with derived fields
func (h *GameHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.State(r.Context(), profileID(r))
	if err != nil {
		respondServiceError(w, r, "Get state", err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// HandleRadar returns the stat axes for the radar chart
func (h *GameHandler) HandleRadar(w http.ResponseWriter, r *http.Request) {
	radar, err := h.svc.Radar(r.Context(), profileID(r))
	if err != nil {
		respondServiceError(w, r, "Get radar", err)
		return
	}
	respondJSON(w, http.StatusOK, radar)
}

// HandleDailyGift claims today's gift
func (h *GameHandler) HandleDailyGift(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ClaimDailyGift(r.Context(), profileID(r))
	respondResult(w, r, "Claim daily gift", res, err)
}

// HandleOpenBox opens one earned box
func (h *GameHandler) HandleOpenBox(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.OpenBox(r.Context(), profileID(r))
	respondResult(w, r, "Open box", res, err)
}

// HandleBuyItem buys the {itemID} shop item
func (h *GameHandler) HandleBuyItem(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.BuyShopItem(r.Context(), profileID(r), chi.URLParam(r, ParamItemID))
	respondResult(w, r, "Buy item", res, err)
}

// HandleMinigameWin credits a won minigame round
func (h *GameHandler) HandleMinigameWin(w http.ResponseWriter, r *http.Request) {
	var req MinigameWinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Minigame win"); err != nil {
		return
	}
	res, err := h.svc.ApplyMinigameWin(r.Context(), profileID(r), req.Game, req.Mode)
	respondResult(w, r, "Minigame win", res, err)
}

// HandleResetPeriodic reopens the quests whose period has ended
func (h *GameHandler) HandleResetPeriodic(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ResetPeriodicQuests(r.Context(), profileID(r))
	respondResult(w, r, "Reset periodic quests", res, err)
}

func respondResult(w http.ResponseWriter, r *http.Request, op string, res game.Result, err error) {
	if err != nil {
		respondServiceError(w, r, op, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
