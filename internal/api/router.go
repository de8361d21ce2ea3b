package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/tradetips/internal/api/handlers"
	"github.com/wonny/tradetips/pkg/logger"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	scoreHandler *handlers.ScoreHandler,
	watchlistHandler *handlers.WatchlistHandler,
	quotesHandler *handlers.QuotesHandler,
	historyHandler *handlers.HistoryHandler,
	wsHandler *handlers.ScoreboardWS,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Scoring endpoints
	api.HandleFunc("/score/{ticker}", scoreHandler.GetScore).Methods("GET")
	api.HandleFunc("/grade/{ticker}", scoreHandler.GetGrade).Methods("GET")
	api.HandleFunc("/scoreboard", scoreHandler.GetScoreboard).Methods("GET")
	api.HandleFunc("/scoreboard/refresh", scoreHandler.RefreshScoreboard).Methods("POST")

	// Watchlist endpoints
	api.HandleFunc("/watchlist", watchlistHandler.List).Methods("GET")
	api.HandleFunc("/watchlist", watchlistHandler.Add).Methods("POST")
	api.HandleFunc("/watchlist/{ticker}", watchlistHandler.Remove).Methods("DELETE")
	api.HandleFunc("/watchlist", watchlistHandler.Clear).Methods("DELETE")

	// Score history endpoints
	api.HandleFunc("/history", historyHandler.GetLatest).Methods("GET")
	api.HandleFunc("/history/{ticker}", historyHandler.GetHistory).Methods("GET")

	// Quote endpoints
	api.HandleFunc("/quotes/{ticker}", quotesHandler.GetSeries).Methods("GET")
	api.HandleFunc("/quotes/{ticker}/metrics", quotesHandler.GetKeyMetrics).Methods("GET")
	api.HandleFunc("/opportunities", quotesHandler.GetOpportunities).Methods("GET")

	// Realtime scoreboard push
	r.HandleFunc("/ws/scoreboard", wsHandler.Serve)

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "tradetips-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
