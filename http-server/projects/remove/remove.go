package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"marmoraria-pro/internal/storage"
)

type ProjectRemover interface {
	DeleteProject(ctx context.Context, id string) error
}

type Response struct {
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// DeleteProject removes a manual project. The caller confirms by sending
// ?confirm=1; synced projects are refused with 409.
func DeleteProject(log *slog.Logger, remover ProjectRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.projects.remove.DeleteProject"

		if r.URL.Query().Get("confirm") != "1" {
			http.Error(w, "confirmação obrigatória para excluir", http.StatusBadRequest)
			return
		}

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		err := remover.DeleteProject(ctx, id)
		switch {
		case errors.Is(err, storage.ErrProjectNotFound):
			http.Error(w, "projeto não encontrado", http.StatusNotFound)
			return
		case errors.Is(err, storage.ErrExternalProject):
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, Response{Error: "projeto sincronizado não pode ser excluído"})
			return
		case err != nil:
			log.Error("failed to delete project", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "não foi possível excluir o projeto"})
			return
		}

		render.JSON(w, r, Response{Status: strconv.Itoa(http.StatusOK)})
	}
}
