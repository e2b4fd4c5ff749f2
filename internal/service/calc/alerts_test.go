package calc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marmoraria-pro/internal/storage"
)

var today = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func TestAlerts_WaitingPastMeasurement(t *testing.T) {
	p := &storage.Project{
		Status:          storage.StatusWaiting,
		MeasurementDate: "2024-06-06",
	}

	alerts := Alerts(p, today)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityDanger, alerts[0].Severity)
	assert.Equal(t, "waiting 4 days past measurement", alerts[0].Message)
}

func TestAlerts_WaitingUnderThreshold(t *testing.T) {
	p := &storage.Project{
		Status:          storage.StatusWaiting,
		MeasurementDate: "2024-06-08", // 2 days, below the 3 day rule
	}

	assert.Empty(t, Alerts(p, today))
}

func TestAlerts_MeasurementRuleOnlyForWaiting(t *testing.T) {
	p := &storage.Project{
		Status:          storage.StatusInProgress,
		MeasurementDate: "2024-06-01",
	}

	assert.Empty(t, Alerts(p, today))
}

func TestAlerts_DeadlineOverdue(t *testing.T) {
	p := &storage.Project{
		Status:       storage.StatusInProgress,
		DeadlineDate: "2024-06-09",
	}

	alerts := Alerts(p, today)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityDanger, alerts[0].Severity)
	assert.Equal(t, "overdue by 1 day", alerts[0].Message)
}

func TestAlerts_DeadlineNear(t *testing.T) {
	p := &storage.Project{
		Status:       storage.StatusInProgress,
		DeadlineDate: "2024-06-11",
	}

	alerts := Alerts(p, today)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityWarning, alerts[0].Severity)
	assert.Equal(t, "due in 1 day", alerts[0].Message)
}

func TestAlerts_DeadlineToday(t *testing.T) {
	p := &storage.Project{
		Status:       storage.StatusInProgress,
		DeadlineDate: "2024-06-10",
	}

	alerts := Alerts(p, today)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityWarning, alerts[0].Severity)
	assert.Equal(t, "due in 0 days", alerts[0].Message)
}

func TestAlerts_DeadlineFarAway(t *testing.T) {
	p := &storage.Project{
		Status:       storage.StatusInProgress,
		DeadlineDate: "2024-06-20",
	}

	assert.Empty(t, Alerts(p, today))
}

func TestAlerts_FinishedNeverAlerts(t *testing.T) {
	p := &storage.Project{
		Status:       storage.StatusFinished,
		DeadlineDate: "2024-06-01",
	}

	assert.Empty(t, Alerts(p, today))
}

func TestAlerts_BothRulesFire(t *testing.T) {
	p := &storage.Project{
		Status:          storage.StatusWaiting,
		MeasurementDate: "2024-06-01",
		DeadlineDate:    "2024-06-05",
	}

	alerts := Alerts(p, today)
	require.Len(t, alerts, 2)
	assert.Equal(t, SeverityDanger, alerts[0].Severity)
	assert.Equal(t, "overdue by 5 days", alerts[1].Message)
}

func TestAlerts_InvalidDatesIgnored(t *testing.T) {
	p := &storage.Project{
		Status:          storage.StatusWaiting,
		MeasurementDate: "ontem",
		DeadlineDate:    "10/06/2024",
	}

	assert.Empty(t, Alerts(p, today))
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2024, 6, 6, 23, 59, 0, 0, time.UTC)
	to := time.Date(2024, 6, 10, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 4, daysBetween(from, to))
	assert.Equal(t, -4, daysBetween(to, from))
	assert.Equal(t, 0, daysBetween(to, to))
}
