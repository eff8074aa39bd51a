package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/taiwoajasa245/verbum-dei-api/internal/study"
	"github.com/taiwoajasa245/verbum-dei-api/pkg/response"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.ServerIsWorking)
	r.Get("/health", s.HealthHandler)

	r.Route("/verbum-dei/v1", func(r chi.Router) {
		r.Get("/", s.ServerIsWorking)
		r.Get("/health", s.HealthHandler)
		s.loadStudyRoutes(r)
	})

	return r
}

func (s *Server) ServerIsWorking(w http.ResponseWriter, r *http.Request) {
	resp := make(map[string]string)
	resp["message"] = "Welcome to Verbum Dei api"
	response.Success(w, resp, "Success")
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	stats := map[string]string{
		"status":   "up",
		"storage":  s.cfg.StorageDriver,
		"sessions": strconv.Itoa(s.manager.Len()),
	}
	if s.db != nil {
		for k, v := range s.db.Health() {
			stats["db_"+k] = v
		}
		if stats["db_status"] != "up" {
			stats["status"] = "degraded"
			response.JSON(w, http.StatusServiceUnavailable, response.APIResponse{
				Status:  http.StatusServiceUnavailable,
				Success: false,
				Message: "database unavailable",
				Data:    stats,
			})
			return
		}
	}
	response.Success(w, stats, "Success")
}

func (s *Server) loadStudyRoutes(router chi.Router) {
	studyHandler := study.NewHandler(s.manager)
	studyHandler.Routes(router)
}
