package rest

import (
	"net/http"
	"os"

	"questhunt/internal/service"
	"questhunt/internal/transport/rest/handler"
	"questhunt/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService        *service.AuthService
	TeamService        *service.TeamService
	TaskService        *service.TaskService
	SubmissionService  *service.SubmissionService
	SideQuestService   *service.SideQuestService
	LeaderboardService *service.LeaderboardService
	ConfigService      *service.ConfigService
	StatsService       *service.StatsService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	teamHandler := handler.NewTeamHandler(c.TeamService)
	taskHandler := handler.NewTaskHandler(c.TaskService, c.SubmissionService)
	submissionHandler := handler.NewSubmissionHandler(c.SubmissionService)
	questHandler := handler.NewSideQuestHandler(c.SideQuestService)
	leaderboardHandler := handler.NewLeaderboardHandler(c.LeaderboardService)
	configHandler := handler.NewConfigHandler(c.ConfigService)
	statsHandler := handler.NewStatsHandler(c.StatsService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/admin-setup", authHandler.AdminSetup).Methods("POST", "OPTIONS")
	v1.HandleFunc("/config", configHandler.Public).Methods("GET", "OPTIONS")
	v1.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods("GET", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Team routes (any authenticated team, admin included)
	teamRoutes := v1.NewRoute().Subrouter()
	teamRoutes.Use(authMW.RequireTeam)

	teamRoutes.HandleFunc("/auth/profile", authHandler.UpdateProfile).Methods("PUT", "OPTIONS")
	teamRoutes.HandleFunc("/tasks", taskHandler.List).Methods("GET", "OPTIONS")
	teamRoutes.HandleFunc("/tasks/{id}", taskHandler.Get).Methods("GET", "OPTIONS")
	teamRoutes.HandleFunc("/tasks/{id}/start", taskHandler.Start).Methods("POST", "OPTIONS")
	teamRoutes.HandleFunc("/submissions/{taskId}/upload", submissionHandler.Upload).Methods("POST", "OPTIONS")
	teamRoutes.HandleFunc("/submissions/feed", submissionHandler.Feed).Methods("GET", "OPTIONS")
	teamRoutes.HandleFunc("/sidequests", questHandler.List).Methods("GET", "OPTIONS")
	teamRoutes.HandleFunc("/sidequests/gallery", questHandler.Gallery).Methods("GET", "OPTIONS")
	teamRoutes.HandleFunc("/sidequests/{id}/submit", questHandler.Submit).Methods("POST", "OPTIONS")

	// Admin routes
	adminRoutes := v1.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/config", configHandler.Get).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/config", configHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/stats", statsHandler.Overview).Methods("GET", "OPTIONS")

	adminRoutes.HandleFunc("/tasks", taskHandler.AdminList).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/tasks", taskHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/tasks/{id}", taskHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/tasks/{id}", taskHandler.Delete).Methods("DELETE", "OPTIONS")

	adminRoutes.HandleFunc("/teams", teamHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/teams", teamHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/teams/bulk", teamHandler.BulkCreate).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/teams/{id}/reshuffle", teamHandler.Reshuffle).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/teams/{id}", teamHandler.Delete).Methods("DELETE", "OPTIONS")

	adminRoutes.HandleFunc("/submissions", submissionHandler.AdminList).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/submissions/{id}/block", submissionHandler.Block).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/submissions/{id}/unblock", submissionHandler.Unblock).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/submissions/{id}/score", submissionHandler.Score).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/submissions/{id}", submissionHandler.DeletePhoto).Methods("DELETE", "OPTIONS")

	adminRoutes.HandleFunc("/sidequests", questHandler.AdminList).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/sidequests", questHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/sidequests/submissions/{id}/review", questHandler.Review).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/sidequests/{id}", questHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/sidequests/{id}", questHandler.Delete).Methods("DELETE", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
