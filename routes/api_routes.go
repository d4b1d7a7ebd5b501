// routes/api_routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/comm_star_schema/ETL/load"
	"github.com/LilVoxy/comm_star_schema/ETL/utils"
)

// SetupRoutes настраивает все маршруты API просмотра звездной схемы
func SetupRoutes(router *mux.Router, snapshot *load.Snapshot, logger *utils.ETLLogger) {
	// Применяем CORS middleware
	router.Use(CORSMiddleware)

	handlers := NewTableHandlers(snapshot, logger)

	// API таблиц
	router.HandleFunc("/api/tables", handlers.ListTables).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/tables/{name}", handlers.GetTable).Methods(http.MethodGet, http.MethodOptions)

	// API метаданных запуска
	router.HandleFunc("/api/metadata", handlers.GetMetadata).Methods(http.MethodGet, http.MethodOptions)
}

// CORSMiddleware разрешает запросы с любых источников
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
