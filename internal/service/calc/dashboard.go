package calc

import (
	"sort"
	"time"

	"marmoraria-pro/internal/storage"
)

// Stats aggregates the dashboard cards for one month window over the
// received date. Revenue and commissions only count completed environments.
type Stats struct {
	TotalRevenue     storage.Cents                 `json:"totalRevenue"`
	TotalCommissions storage.Cents                 `json:"totalCommissions"`
	ReceivedCount    int                           `json:"receivedCount"`
	ActiveCount      int                           `json:"activeCount"`
	FinishedCount    int                           `json:"finishedCount"`
	ByStatus         map[storage.ProjectStatus]int `json:"byStatus"`
}

func MonthlyStats(projects []*storage.Project, month time.Month, year int) Stats {
	stats := Stats{ByStatus: make(map[storage.ProjectStatus]int)}
	for _, status := range storage.AllStatuses() {
		stats.ByStatus[status] = 0
	}

	for _, p := range projects {
		received, err := time.ParseInLocation(storage.DateLayout, p.ReceivedDate, time.UTC)
		if err != nil || received.Month() != month || received.Year() != year {
			continue
		}

		stats.TotalRevenue += CompletedTotal(p)
		stats.TotalCommissions += Commission(p)
		stats.ReceivedCount++
		if p.Status == storage.StatusFinished {
			stats.FinishedCount++
		} else {
			stats.ActiveCount++
		}
		stats.ByStatus[p.Status]++
	}

	return stats
}

// AvailableYears lists every year seen on a received date plus the current
// one, newest first.
func AvailableYears(projects []*storage.Project, now time.Time) []int {
	seen := map[int]bool{now.Year(): true}
	for _, p := range projects {
		if received, err := time.ParseInLocation(storage.DateLayout, p.ReceivedDate, time.UTC); err == nil {
			seen[received.Year()] = true
		}
	}

	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
