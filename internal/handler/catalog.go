package handler

import (
	"net/http"
	"strconv"

	"github.com/osse101/HabitQuest_Go/internal/catalog"
	"github.com/osse101/HabitQuest_Go/internal/clock"
)

// SeasonResponse names the current season, if any
type SeasonResponse struct {
	Season string `json:"season,omitempty"`
	Active bool   `json:"active"`
}

// CatalogHandler serves the read-only catalogs
type CatalogHandler struct {
	cat   *catalog.Catalog
	clock clock.Clock
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(cat *catalog.Catalog, clk clock.Clock) *CatalogHandler {
	return &CatalogHandler{cat: cat, clock: clk}
}

// HandleShop lists the shop items
func (h *CatalogHandler) HandleShop(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cat.Shop)
}

// HandleAvatars lists the avatars
func (h *CatalogHandler) HandleAvatars(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cat.Avatars)
}

// HandlePresets lists the starter quests for ?age=
func (h *CatalogHandler) HandlePresets(w http.ResponseWriter, r *http.Request) {
	age, err := strconv.Atoi(r.URL.Query().Get("age"))
	if err != nil || age < 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidAge)
		return
	}
	respondJSON(w, http.StatusOK, h.cat.PresetsForAge(age))
}

// HandleSeason returns the season for today
func (h *CatalogHandler) HandleSeason(w http.ResponseWriter, r *http.Request) {
	s, ok := h.cat.SeasonAt(h.clock.Now())
	if !ok {
		respondJSON(w, http.StatusOK, SeasonResponse{})
		return
	}
	respondJSON(w, http.StatusOK, SeasonResponse{Season: s.Name, Active: true})
}
