package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/cors"

	generate_excel "production-schedule/http-server/generate-report/generate-excel"
	"production-schedule/http-server/health"
	getworkplans "production-schedule/http-server/workplans/get"
	"production-schedule/internal/config"
	excelservice "production-schedule/internal/service/generate-excel"
	"production-schedule/internal/service/workplans"
	"production-schedule/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, workPlanService *workplans.Service, excelService *excelservice.GenerateExcelService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Route(cfg.APIPrefix, func(r chi.Router) {
		r.Get("/workplans", getworkplans.GetWorkPlansByDate(log, workPlanService, cfg.Env, cfg.Timezone))
		r.Get("/workplans/{id}", getworkplans.GetWorkPlanByID(log, workPlanService, cfg.Env))

		r.Get("/health", health.Check(log, storage, cfg.Env))

		r.Get("/report/excel", generate_excel.GenerateReportExcel(log, excelService))
	})

	// Service banner with the endpoint listing.
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]interface{}{
			"message": "Production Schedule Backend API",
			"version": "1.0.0",
			"status":  "running",
			"endpoints": map[string]string{
				"health":       cfg.APIPrefix + "/health",
				"workplans":    cfg.APIPrefix + "/workplans?date=YYYY-MM-DD",
				"workplanById": cfg.APIPrefix + "/workplans/{id}",
				"reportExcel":  cfg.APIPrefix + "/report/excel?date=YYYY-MM-DD",
			},
		})
	})

	// Static dashboard build. The API still works without it; the frontend
	// may be deployed separately.
	frontendDir := cfg.FrontendDir
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("frontend dir not found, serving API only", slog.String("path", frontendDir))
		return router
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/images/*", fileServer)

	// SPA fallback: any other path serves index.html.
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, r.URL.Path)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}
