package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wonny/tradetips/internal/watchlist"
	"github.com/wonny/tradetips/pkg/logger"
)

// WatchlistHandler handles watchlist API endpoints
type WatchlistHandler struct {
	service *watchlist.Service
	logger  *logger.Logger
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(svc *watchlist.Service, log *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{service: svc, logger: log}
}

// AddRequest is the body for adding a ticker.
type AddRequest struct {
	Ticker string `json:"ticker"`
}

// List returns all watchlist entries
// GET /api/watchlist
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list watchlist")
		respondError(w, http.StatusInternalServerError, "Failed to list watchlist")
		return
	}
	if entries == nil {
		entries = []watchlist.Entry{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// Add adds a ticker to the watchlist
// POST /api/watchlist
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ticker, err := h.service.Add(r.Context(), req.Ticker)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"status": "added",
		"ticker": ticker,
	})
}

// Remove deletes one ticker from the watchlist
// DELETE /api/watchlist/{ticker}
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ticker := tickerVar(r)
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	removed, err := h.service.Remove(r.Context(), ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to remove ticker")
		respondError(w, http.StatusInternalServerError, "Failed to remove "+ticker)
		return
	}
	if !removed {
		respondError(w, http.StatusNotFound, ticker+" is not on the watchlist")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "removed",
		"ticker": ticker,
	})
}

// Clear empties the watchlist
// DELETE /api/watchlist
func (h *WatchlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		h.logger.WithError(err).Error("Failed to clear watchlist")
		respondError(w, http.StatusInternalServerError, "Failed to clear watchlist")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
