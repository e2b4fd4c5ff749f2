package import_csv

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"marmoraria-pro/internal/service/planilha"
	"marmoraria-pro/internal/storage"
)

type ProjectImporter interface {
	SaveProjects(ctx context.Context, projects []*storage.Project) error
}

type Response struct {
	Rows      int    `json:"rows"`
	Committed bool   `json:"committed"`
	Status    string `json:"status,omitempty"`
	Error     string `json:"error,omitempty"`
}

const noValidDataMsg = "Nenhum dado válido encontrado. Verifique os cabeçalhos da planilha."

// ImportCSV parses a header-driven CSV from the request body. Without
// ?confirm=1 it only answers with the row count so the user can confirm;
// with it the parsed projects are committed.
func ImportCSV(log *slog.Logger, parser planilha.Parser, importer ProjectImporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.import-csv.ImportCSV"

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("failed to read body", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "não foi possível ler o arquivo", http.StatusBadRequest)
			return
		}

		projects, err := parser.Parse(string(body))
		if err != nil {
			log.Error("failed to parse csv", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, Response{Error: noValidDataMsg})
			return
		}
		if len(projects) == 0 {
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, Response{Error: noValidDataMsg})
			return
		}

		if r.URL.Query().Get("confirm") != "1" {
			render.JSON(w, r, Response{
				Rows:   len(projects),
				Status: strconv.Itoa(http.StatusOK),
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := importer.SaveProjects(ctx, projects); err != nil {
			log.Error("failed to store imported projects", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "não foi possível salvar os projetos importados"})
			return
		}

		render.JSON(w, r, Response{
			Rows:      len(projects),
			Committed: true,
			Status:    strconv.Itoa(http.StatusOK),
		})
	}
}
