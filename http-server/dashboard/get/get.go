package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"marmoraria-pro/internal/service/calc"
	"marmoraria-pro/internal/storage"
)

type ProjectProvider interface {
	GetProjects(ctx context.Context) ([]*storage.Project, error)
}

// UrgentProject is one entry of the urgent-actions panel.
type UrgentProject struct {
	ID         string                `json:"id"`
	ClientName string                `json:"clientName"`
	Status     storage.ProjectStatus `json:"status"`
	Alerts     []calc.Alert          `json:"alerts"`
}

type Response struct {
	Stats          calc.Stats      `json:"stats"`
	Urgent         []UrgentProject `json:"urgent"`
	AvailableYears []int           `json:"availableYears"`
	Status         string          `json:"status"`
	Error          string          `json:"error,omitempty"`
}

// GetDashboard aggregates the month window given by ?month= (1-12) and
// ?year=, defaulting to the current month. Urgent alerts are evaluated over
// the whole collection, not just the window.
func GetDashboard(log *slog.Logger, provider ProjectProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.dashboard.get.GetDashboard"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		now := time.Now().UTC()
		month := int(now.Month())
		year := now.Year()

		if monthStr := r.URL.Query().Get("month"); monthStr != "" {
			m, err := strconv.Atoi(monthStr)
			if err != nil || m < 1 || m > 12 {
				http.Error(w, "Invalid month", http.StatusBadRequest)
				return
			}
			month = m
		}
		if yearStr := r.URL.Query().Get("year"); yearStr != "" {
			y, err := strconv.Atoi(yearStr)
			if err != nil {
				http.Error(w, "Invalid year", http.StatusBadRequest)
				return
			}
			year = y
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		projects, err := provider.GetProjects(ctx)
		if err != nil {
			log.Error("failed to load projects", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "não foi possível carregar o painel"})
			return
		}

		urgent := make([]UrgentProject, 0)
		for _, p := range projects {
			alerts := calc.Alerts(p, now)
			if len(alerts) > 0 {
				urgent = append(urgent, UrgentProject{
					ID:         p.ID,
					ClientName: p.ClientName,
					Status:     p.Status,
					Alerts:     alerts,
				})
			}
		}

		render.JSON(w, r, Response{
			Stats:          calc.MonthlyStats(projects, time.Month(month), year),
			Urgent:         urgent,
			AvailableYears: calc.AvailableYears(projects, now),
			Status:         strconv.Itoa(http.StatusOK),
		})
	}
}
