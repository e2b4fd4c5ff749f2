package calc

import (
	"fmt"
	"math"
	"time"

	"marmoraria-pro/internal/storage"
)

type AlertSeverity string

const (
	SeverityWarning AlertSeverity = "warning"
	SeverityDanger  AlertSeverity = "danger"
)

type Alert struct {
	Severity AlertSeverity `json:"severity"`
	Message  string        `json:"message"`
}

const (
	waitingAfterMeasurementDays = 3
	deadlineWarningDays         = 2
)

// Alerts evaluates the two urgency rules for a project:
//   - waiting projects measured 3 or more days ago
//   - unfinished projects with an overdue or near deadline (2 days)
//
// Dates carry no time of day, so the diff counts whole UTC calendar days
// with ceiling rounding, same thresholds as the dashboard always had.
func Alerts(p *storage.Project, today time.Time) []Alert {
	var alerts []Alert

	if p.Status == storage.StatusWaiting && p.MeasurementDate != "" {
		if measured, err := time.ParseInLocation(storage.DateLayout, p.MeasurementDate, time.UTC); err == nil {
			days := daysBetween(measured, today)
			if days >= waitingAfterMeasurementDays {
				alerts = append(alerts, Alert{
					Severity: SeverityDanger,
					Message:  fmt.Sprintf("waiting %d days past measurement", days),
				})
			}
		}
	}

	if p.Status != storage.StatusFinished && p.DeadlineDate != "" {
		if deadline, err := time.ParseInLocation(storage.DateLayout, p.DeadlineDate, time.UTC); err == nil {
			if overdue := daysBetween(deadline, today); overdue > 0 {
				alerts = append(alerts, Alert{
					Severity: SeverityDanger,
					Message:  fmt.Sprintf("overdue by %d day%s", overdue, pluralDays(overdue)),
				})
			} else if left := daysBetween(today, deadline); left <= deadlineWarningDays {
				alerts = append(alerts, Alert{
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("due in %d day%s", left, pluralDays(left)),
				})
			}
		}
	}

	return alerts
}

func pluralDays(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts calendar days from one date to another, ceiling
// rounded on the millisecond delta. Negative when from is after to.
func daysBetween(from, to time.Time) int {
	ms := truncateDay(to).Sub(truncateDay(from)).Milliseconds()
	return int(math.Ceil(float64(ms) / 86_400_000))
}
