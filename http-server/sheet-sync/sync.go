package sheet_sync

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"marmoraria-pro/internal/service/sheetsync"
)

type Syncer interface {
	Sync(ctx context.Context, url string) (int, error)
}

type SheetURLProvider interface {
	GetSheetURL(ctx context.Context) (string, error)
}

type Response struct {
	Imported int    `json:"imported,omitempty"`
	Status   string `json:"status,omitempty"`
	Error    string `json:"error,omitempty"`
}

// SyncSheet runs one fetch-parse-replace cycle against the configured
// sheet. The sync service owns the download timeout, so no extra deadline
// here.
func SyncSheet(log *slog.Logger, syncer Syncer, settings SheetURLProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.sheet-sync.SyncSheet"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		url, err := settings.GetSheetURL(r.Context())
		if err != nil {
			log.Error("failed to load sheet url", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "não foi possível carregar a configuração"})
			return
		}
		if url == "" {
			http.Error(w, "nenhuma planilha configurada", http.StatusBadRequest)
			return
		}

		imported, err := syncer.Sync(r.Context(), url)
		if err != nil {
			log.Error("sync failed", slog.String("error", err.Error()))
			if errors.Is(err, sheetsync.ErrNoValidRows) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				render.JSON(w, r, Response{Error: "Erro ao ler a planilha. Verifique se o link está correto."})
				return
			}
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, Response{Error: "Erro ao sincronizar com a planilha."})
			return
		}

		render.JSON(w, r, Response{
			Imported: imported,
			Status:   strconv.Itoa(http.StatusOK),
		})
	}
}
