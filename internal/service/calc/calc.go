package calc

import (
	"strings"

	"marmoraria-pro/internal/storage"
)

// ProjectTotal sums every environment of the project.
func ProjectTotal(p *storage.Project) storage.Cents {
	var total storage.Cents
	for _, env := range p.Environments {
		total += env.Value
	}
	return total
}

// CompletedTotal sums only the environments marked as done, the base for
// revenue and commission numbers.
func CompletedTotal(p *storage.Project) storage.Cents {
	var total storage.Cents
	for _, env := range p.Environments {
		if env.Completed {
			total += env.Value
		}
	}
	return total
}

// Commission applies the project percentage over the completed total,
// rounded to the centavo.
func Commission(p *storage.Project) storage.Cents {
	completed := CompletedTotal(p)
	return storage.CentsFromFloat(completed.Float64() * p.CommissionPercentage / 100)
}

// HasPending reports whether an unfinished project still has open
// environments (the PENDENTE badge).
func HasPending(p *storage.Project) bool {
	if p.Status == storage.StatusFinished {
		return false
	}
	for _, env := range p.Environments {
		if !env.Completed {
			return true
		}
	}
	return false
}

// Filter keeps projects matching the text search (client name or order
// number, case-insensitive substring) and the status filter. StatusAll or an
// empty status matches everything. Input order is preserved.
func Filter(projects []*storage.Project, search string, status storage.ProjectStatus) []*storage.Project {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]*storage.Project, 0, len(projects))
	for _, p := range projects {
		if search != "" {
			if !strings.Contains(strings.ToLower(p.ClientName), search) &&
				!strings.Contains(strings.ToLower(p.OrderNumber), search) {
				continue
			}
		}
		if status != "" && status != storage.StatusAll && p.Status != status {
			continue
		}
		out = append(out, p)
	}
	return out
}
