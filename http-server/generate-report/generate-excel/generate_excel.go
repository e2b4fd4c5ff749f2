package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"marmoraria-pro/internal/storage"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, search string, status storage.ProjectStatus) ([]byte, error)
}

// GenerateReportExcel streams the XLSX report for the filtered project
// list, same ?search= and ?status= as the listing.
func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.generate-report.GenerateReportExcel"

		search := r.URL.Query().Get("search")
		status := storage.ProjectStatus(r.URL.Query().Get("status"))

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		data, err := gen.GenerateExcel(ctx, search, status)
		if err != nil {
			log.Error("failed to generate report", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "não foi possível gerar o relatório", http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("relatorio_projetos_%s.xlsx", time.Now().Format(storage.DateLayout))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Write(data)
	}
}
