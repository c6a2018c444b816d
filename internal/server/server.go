package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fanwatch/publication-insights/internal/metrics"
	"github.com/fanwatch/publication-insights/internal/models"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Monitor is the part of the monitoring service the ops endpoints use
type Monitor interface {
	GetMetrics() string
	LatestReport() *models.Report
	RunAnalysis() error
	RunThreatCheck() error
}

// NewRouter builds the ops router: health, latest dashboard, run metrics and manual triggers
func NewRouter(monitor Monitor) *mux.Router {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Latest dashboard statistics
	router.HandleFunc("/stats", statsHandler(monitor)).Methods("GET")

	// Run status of the service itself
	router.HandleFunc("/status", statusHandler(monitor)).Methods("GET")

	// Prometheus metrics
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	// Manual trigger endpoint
	router.HandleFunc("/trigger", triggerHandler(monitor)).Methods("POST")

	return router
}

// NewServer wraps the router with the usual timeouts
func NewServer(addr string, monitor Monitor) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      NewRouter(monitor),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Errorf("Failed to write response: %v", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func statsHandler(monitor Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := monitor.LatestReport()
		if report == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no analysis has completed yet"})
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func statusHandler(monitor Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(monitor.GetMetrics()))
	}
}

func triggerHandler(monitor Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("run") {
		case "", "analysis":
			go func() {
				if err := monitor.RunAnalysis(); err != nil {
					logrus.Errorf("Manual analysis trigger failed: %v", err)
				}
			}()
			writeJSON(w, http.StatusAccepted, map[string]string{"message": "Analysis triggered successfully"})
		case "threats":
			go func() {
				if err := monitor.RunThreatCheck(); err != nil {
					logrus.Errorf("Manual threat check trigger failed: %v", err)
				}
			}()
			writeJSON(w, http.StatusAccepted, map[string]string{"message": "Threat check triggered successfully"})
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "run must be 'analysis' or 'threats'"})
		}
	}
}
