package server

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/amrani/pharmacy-backend/internal/httputil"
)

// RegisterHealthCheck registers the health check endpoint
func RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			httputil.RespondJSON(w, http.StatusServiceUnavailable, httputil.Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		httputil.RespondJSON(w, http.StatusOK, httputil.Response{
			Success: true,
			Message: "Pharmacy service is healthy",
		})
	}).Methods("GET")
}
