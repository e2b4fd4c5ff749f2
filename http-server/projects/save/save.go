package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"marmoraria-pro/internal/storage"
)

type ProjectSaver interface {
	GetProject(ctx context.Context, id string) (*storage.Project, error)
	SaveProject(ctx context.Context, p *storage.Project) error
}

type Response struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// SaveProject creates a manually entered project from the form payload.
func SaveProject(log *slog.Logger, saver ProjectSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.projects.save.SaveProject"

		var req storage.Project
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "dados inválidos", http.StatusBadRequest)
			return
		}

		if err := req.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		req.IsExternal = false
		req.Normalize(time.Now())

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := saver.SaveProject(ctx, &req); err != nil {
			log.Error("failed to save project", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "não foi possível salvar o projeto"})
			return
		}

		render.JSON(w, r, Response{
			ID:     req.ID,
			Status: strconv.Itoa(http.StatusOK),
		})
	}
}

// UpdateProject replaces a manually entered project. Projects owned by the
// sheet sync are read-only, the next sync would discard the edit anyway.
func UpdateProject(log *slog.Logger, saver ProjectSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.projects.save.UpdateProject"

		id := chi.URLParam(r, "id")

		var req storage.Project
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "dados inválidos", http.StatusBadRequest)
			return
		}

		if err := req.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		existing, err := saver.GetProject(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrProjectNotFound) {
				http.Error(w, "projeto não encontrado", http.StatusNotFound)
				return
			}
			log.Error("failed to load project", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "não foi possível carregar o projeto", http.StatusInternalServerError)
			return
		}
		if existing.IsExternal {
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, Response{Error: "projeto sincronizado não pode ser editado manualmente"})
			return
		}

		req.ID = id
		req.IsExternal = false
		req.Normalize(time.Now())

		if err := saver.SaveProject(ctx, &req); err != nil {
			log.Error("failed to update project", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "não foi possível salvar o projeto"})
			return
		}

		render.JSON(w, r, Response{
			ID:     req.ID,
			Status: strconv.Itoa(http.StatusOK),
		})
	}
}
