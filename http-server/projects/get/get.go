package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"marmoraria-pro/internal/service/calc"
	"marmoraria-pro/internal/storage"
)

// ProjectView is a project plus the derived numbers the cards show.
type ProjectView struct {
	*storage.Project
	Total          storage.Cents `json:"total"`
	CompletedTotal storage.Cents `json:"completedTotal"`
	Commission     storage.Cents `json:"commission"`
	Pending        bool          `json:"pending"`
}

func NewProjectView(p *storage.Project) *ProjectView {
	return &ProjectView{
		Project:        p,
		Total:          calc.ProjectTotal(p),
		CompletedTotal: calc.CompletedTotal(p),
		Commission:     calc.Commission(p),
		Pending:        calc.HasPending(p),
	}
}

type ResponseProjects struct {
	Projects []*ProjectView `json:"projects"`
	Status   string         `json:"status"`
	Error    string         `json:"error,omitempty"`
}

type ProjectProvider interface {
	GetProjects(ctx context.Context) ([]*storage.Project, error)
}

// GetProjectsFilter lists projects, optionally narrowed by ?search= and
// ?status=. Order is the stored display order.
func GetProjectsFilter(log *slog.Logger, provider ProjectProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.projects.get.GetProjectsFilter"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		search := r.URL.Query().Get("search")
		status := storage.ProjectStatus(r.URL.Query().Get("status"))

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		projects, err := provider.GetProjects(ctx)
		if err != nil {
			log.Error("failed to load projects", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseProjects{Error: "não foi possível carregar os projetos"})
			return
		}

		filtered := calc.Filter(projects, search, status)
		views := make([]*ProjectView, 0, len(filtered))
		for _, p := range filtered {
			views = append(views, NewProjectView(p))
		}

		render.JSON(w, r, ResponseProjects{
			Projects: views,
			Status:   strconv.Itoa(http.StatusOK),
		})
	}
}

type SingleProvider interface {
	GetProject(ctx context.Context, id string) (*storage.Project, error)
}

func GetProject(log *slog.Logger, provider SingleProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.projects.get.GetProject"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		project, err := provider.GetProject(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrProjectNotFound) {
				http.Error(w, "projeto não encontrado", http.StatusNotFound)
				return
			}
			log.Error("failed to load project", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "não foi possível carregar o projeto", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, NewProjectView(project))
	}
}
