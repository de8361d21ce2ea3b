package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/tradetips/internal/scoreboard"
	"github.com/wonny/tradetips/pkg/logger"
)

// ScoreHandler handles scoring API endpoints
type ScoreHandler struct {
	board  *scoreboard.Service
	logger *logger.Logger
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(board *scoreboard.Service, log *logger.Logger) *ScoreHandler {
	return &ScoreHandler{board: board, logger: log}
}

// GetScore returns the continuous score for one ticker
// GET /api/score/{ticker}
func (h *ScoreHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ticker := tickerVar(r)
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	result, err := h.board.ScoreTicker(ctx, ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to score ticker")
		respondError(w, http.StatusBadGateway, "Failed to fetch metrics for "+ticker)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetGrade returns the graded result for one ticker
// GET /api/grade/{ticker}
func (h *ScoreHandler) GetGrade(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ticker := tickerVar(r)
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	result, err := h.board.GradeTicker(ctx, ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to grade ticker")
		respondError(w, http.StatusBadGateway, "Failed to fetch metrics for "+ticker)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetScoreboard returns the scoreboard for the whole watchlist
// GET /api/scoreboard
func (h *ScoreHandler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.board.Board(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build scoreboard")
		respondError(w, http.StatusInternalServerError, "Failed to build scoreboard")
		return
	}

	respondJSON(w, http.StatusOK, board)
}

// RefreshScoreboard forces a rebuild, bypassing the cache
// POST /api/scoreboard/refresh
func (h *ScoreHandler) RefreshScoreboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.board.Refresh(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to refresh scoreboard")
		respondError(w, http.StatusInternalServerError, "Failed to refresh scoreboard")
		return
	}

	respondJSON(w, http.StatusOK, board)
}

func tickerVar(r *http.Request) string {
	return strings.ToUpper(strings.TrimSpace(mux.Vars(r)["ticker"]))
}
