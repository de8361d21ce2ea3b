package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/wonny/tradetips/internal/snapshot"
	"github.com/wonny/tradetips/pkg/logger"
)

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 365
)

// SnapshotReader is the snapshot read path the history endpoints need.
// *snapshot.Repository satisfies it.
type SnapshotReader interface {
	Latest(ctx context.Context) ([]snapshot.Snapshot, error)
	History(ctx context.Context, ticker string, limit int) ([]snapshot.Snapshot, error)
}

// HistoryHandler handles score history API endpoints
type HistoryHandler struct {
	snapshots SnapshotReader
	logger    *logger.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(snapshots SnapshotReader, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{snapshots: snapshots, logger: log}
}

// GetLatest returns the most recent snapshot per ticker
// GET /api/history
func (h *HistoryHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.snapshots.Latest(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest snapshots")
		respondError(w, http.StatusInternalServerError, "Failed to load latest snapshots")
		return
	}
	if snapshots == nil {
		snapshots = []snapshot.Snapshot{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"snapshots": snapshots,
		"count":     len(snapshots),
	})
}

// GetHistory returns snapshots for one ticker, newest first
// GET /api/history/{ticker}?limit=30
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ticker := tickerVar(r)
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	snapshots, err := h.snapshots.History(r.Context(), ticker, limit)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to load score history")
		respondError(w, http.StatusInternalServerError, "Failed to load score history for "+ticker)
		return
	}
	if snapshots == nil {
		snapshots = []snapshot.Snapshot{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ticker":    ticker,
		"snapshots": snapshots,
		"count":     len(snapshots),
	})
}
