package settings

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/render"
)

type SheetURLStore interface {
	GetSheetURL(ctx context.Context) (string, error)
	SaveSheetURL(ctx context.Context, url string) error
}

type SheetCleaner interface {
	ClearSheetConfiguration(ctx context.Context) error
}

type Request struct {
	SheetURL string `json:"sheetUrl"`
}

type Response struct {
	SheetURL string `json:"sheetUrl,omitempty"`
	Status   string `json:"status,omitempty"`
	Error    string `json:"error,omitempty"`
}

func GetSheetURL(log *slog.Logger, store SheetURLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.settings.GetSheetURL"

		url, err := store.GetSheetURL(r.Context())
		if err != nil {
			log.Error("failed to load sheet url", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "não foi possível carregar a configuração"})
			return
		}

		render.JSON(w, r, Response{SheetURL: url, Status: strconv.Itoa(http.StatusOK)})
	}
}

func SaveSheetURL(log *slog.Logger, store SheetURLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.settings.SaveSheetURL"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "dados inválidos", http.StatusBadRequest)
			return
		}

		url := strings.TrimSpace(req.SheetURL)
		if url == "" || !strings.HasPrefix(url, "http") {
			http.Error(w, "link da planilha inválido", http.StatusBadRequest)
			return
		}

		if err := store.SaveSheetURL(r.Context(), url); err != nil {
			log.Error("failed to save sheet url", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "não foi possível salvar a configuração"})
			return
		}

		render.JSON(w, r, Response{SheetURL: url, Status: strconv.Itoa(http.StatusOK)})
	}
}

// ClearSheetURL drops the sheet link and every synced project, the "Limpar"
// action. Both happen in one storage transaction. Requires ?confirm=1.
func ClearSheetURL(log *slog.Logger, cleaner SheetCleaner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.settings.ClearSheetURL"

		if r.URL.Query().Get("confirm") != "1" {
			http.Error(w, "confirmação obrigatória para limpar", http.StatusBadRequest)
			return
		}

		if err := cleaner.ClearSheetConfiguration(r.Context()); err != nil {
			log.Error("failed to clear sheet configuration", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "não foi possível limpar a configuração"})
			return
		}

		render.JSON(w, r, Response{Status: strconv.Itoa(http.StatusOK)})
	}
}
