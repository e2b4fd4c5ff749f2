package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"marmoraria-pro/internal/storage"
)

type ProjectProvider interface {
	GetProject(ctx context.Context, id string) (*storage.Project, error)
}

type Summarizer interface {
	Summary(ctx context.Context, p *storage.Project) string
}

type Response struct {
	Summary string `json:"summary"`
	Status  string `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}

// GetSummary returns the AI note for one project. The summary service never
// errors, it falls back to a fixed message, so the only failure modes here
// are the lookup ones.
func GetSummary(log *slog.Logger, provider ProjectProvider, summarizer Summarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.summary.get.GetSummary"

		id := chi.URLParam(r, "id")

		project, err := provider.GetProject(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrProjectNotFound) {
				http.Error(w, "projeto não encontrado", http.StatusNotFound)
				return
			}
			log.Error("failed to load project", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "não foi possível carregar o projeto", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{
			Summary: summarizer.Summary(r.Context(), project),
			Status:  strconv.Itoa(http.StatusOK),
		})
	}
}
