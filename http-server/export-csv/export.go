package export_csv

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"marmoraria-pro/internal/service/calc"
	"marmoraria-pro/internal/service/planilha"
	"marmoraria-pro/internal/storage"
)

type ProjectProvider interface {
	GetProjects(ctx context.Context) ([]*storage.Project, error)
}

// ExportCSV downloads the currently filtered list (same ?search= and
// ?status= as the listing) as a CSV file named after the export date.
func ExportCSV(log *slog.Logger, provider ProjectProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.export-csv.ExportCSV"

		search := r.URL.Query().Get("search")
		status := storage.ProjectStatus(r.URL.Query().Get("status"))

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		projects, err := provider.GetProjects(ctx)
		if err != nil {
			log.Error("failed to load projects", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "não foi possível exportar os projetos", http.StatusInternalServerError)
			return
		}

		data := planilha.ExportCSV(calc.Filter(projects, search, status))

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", planilha.ExportFilename(time.Now())))
		w.Write(data)
	}
}
