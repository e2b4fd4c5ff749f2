package calc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"marmoraria-pro/internal/storage"
)

func TestMonthlyStats(t *testing.T) {
	projects := []*storage.Project{
		{
			ClientName:           "Acme",
			Status:               storage.StatusFinished,
			ReceivedDate:         "2024-06-03",
			CommissionPercentage: 0.5,
			Environments: []storage.Environment{
				{Value: 150000, Completed: true},
			},
		},
		{
			ClientName:   "Beta",
			Status:       storage.StatusInProgress,
			ReceivedDate: "2024-06-20",
			Environments: []storage.Environment{
				{Value: 80000}, // open, no revenue
			},
		},
		{
			ClientName:   "Fora do mês",
			Status:       storage.StatusFinished,
			ReceivedDate: "2024-05-30",
			Environments: []storage.Environment{
				{Value: 999900, Completed: true},
			},
		},
	}

	stats := MonthlyStats(projects, time.June, 2024)

	assert.Equal(t, storage.Cents(150000), stats.TotalRevenue)
	assert.Equal(t, storage.Cents(750), stats.TotalCommissions)
	assert.Equal(t, 2, stats.ReceivedCount)
	assert.Equal(t, 1, stats.ActiveCount)
	assert.Equal(t, 1, stats.FinishedCount)
	assert.Equal(t, 1, stats.ByStatus[storage.StatusFinished])
	assert.Equal(t, 1, stats.ByStatus[storage.StatusInProgress])
	assert.Equal(t, 0, stats.ByStatus[storage.StatusWaiting])
}

func TestMonthlyStats_BadDatesSkipped(t *testing.T) {
	projects := []*storage.Project{
		{ClientName: "Acme", ReceivedDate: "junho"},
	}

	stats := MonthlyStats(projects, time.June, 2024)
	assert.Equal(t, 0, stats.ReceivedCount)
}

func TestAvailableYears(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	projects := []*storage.Project{
		{ReceivedDate: "2022-01-10"},
		{ReceivedDate: "2024-03-01"},
		{ReceivedDate: "inválida"},
	}

	assert.Equal(t, []int{2024, 2022}, AvailableYears(projects, now))
}
