package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getdashboard "marmoraria-pro/http-server/dashboard/get"
	export_csv "marmoraria-pro/http-server/export-csv"
	reportexcel "marmoraria-pro/http-server/generate-report/generate-excel"
	import_csv "marmoraria-pro/http-server/import-csv"
	getmaterials "marmoraria-pro/http-server/materials/get"
	getprojects "marmoraria-pro/http-server/projects/get"
	removeproject "marmoraria-pro/http-server/projects/remove"
	saveproject "marmoraria-pro/http-server/projects/save"
	settingshandler "marmoraria-pro/http-server/settings"
	sheet_sync "marmoraria-pro/http-server/sheet-sync"
	getsummary "marmoraria-pro/http-server/summary/get"
	"marmoraria-pro/internal/config"
	"marmoraria-pro/internal/middleware/auth"
	generate_excel "marmoraria-pro/internal/service/generate-excel"
	"marmoraria-pro/internal/service/planilha"
	"marmoraria-pro/internal/service/sheetsync"
	"marmoraria-pro/internal/service/summary"
	"marmoraria-pro/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage,
	syncService *sheetsync.Service, summaryService *summary.Service,
	genService *generate_excel.GenerateExcelService) *chi.Mux {

	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// projetos
	router.Get("/api/projects", getprojects.GetProjectsFilter(log, storage))
	router.Get("/api/projects/{id}", getprojects.GetProject(log, storage))
	router.Post("/api/projects", saveproject.SaveProject(log, storage))
	router.Put("/api/projects/{id}", saveproject.UpdateProject(log, storage))
	router.Delete("/api/projects/{id}", removeproject.DeleteProject(log, storage))

	// painel
	router.Get("/api/dashboard", getdashboard.GetDashboard(log, storage))

	// importação/exportação CSV
	router.Post("/api/projects/import", import_csv.ImportCSV(log, &planilha.HeaderParser{}, storage))
	router.Get("/api/projects/export", export_csv.ExportCSV(log, storage))
	router.Get("/api/report/excel", reportexcel.GenerateReportExcel(log, genService))

	// sincronização com a planilha publicada
	router.Post("/api/sync", sheet_sync.SyncSheet(log, syncService, storage))
	router.Get("/api/settings/sheet", settingshandler.GetSheetURL(log, storage))
	router.Put("/api/settings/sheet", settingshandler.SaveSheetURL(log, storage))
	router.Delete("/api/settings/sheet", settingshandler.ClearSheetURL(log, storage))

	// análise inteligente
	router.Get("/api/projects/{id}/summary", getsummary.GetSummary(log, storage, summaryService))

	// materiais
	router.Get("/api/materials", getmaterials.GetMaterials())

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))
	adminRouter.Get("/settings/sheet", settingshandler.GetSheetURL(log, storage))
	adminRouter.Put("/settings/sheet", settingshandler.SaveSheetURL(log, storage))
	adminRouter.Delete("/settings/sheet", settingshandler.ClearSheetURL(log, storage))
	adminRouter.Get("/projects/export", export_csv.ExportCSV(log, storage))
	router.Mount("/api/admin", adminRouter)

	// estático, SPA
	frontendDir := "./frontend-dist"
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("frontend build not found, serving API only", "path", frontendDir)
		return router
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	// SPA fallback: qualquer outro caminho → index.html
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
