package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"marmoraria-pro/internal/storage"
)

func project(envs ...storage.Environment) *storage.Project {
	return &storage.Project{
		ID:           "p1",
		ClientName:   "Acme",
		Status:       storage.StatusInProgress,
		Environments: envs,
	}
}

func TestProjectTotal(t *testing.T) {
	p := project(
		storage.Environment{Name: "Cozinha", Value: 150000, Completed: true},
		storage.Environment{Name: "Banheiro", Value: 80050},
	)

	assert.Equal(t, storage.Cents(230050), ProjectTotal(p))
	assert.Equal(t, storage.Cents(0), ProjectTotal(project()))
}

func TestCompletedTotal_NeverExceedsTotal(t *testing.T) {
	cases := []struct {
		name string
		envs []storage.Environment
	}{
		{"none completed", []storage.Environment{{Value: 100}, {Value: 200}}},
		{"all completed", []storage.Environment{{Value: 100, Completed: true}, {Value: 200, Completed: true}}},
		{"mixed", []storage.Environment{{Value: 100, Completed: true}, {Value: 200}}},
		{"empty", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := project(tc.envs...)
			assert.LessOrEqual(t, CompletedTotal(p), ProjectTotal(p))
		})
	}
}

func TestCommission(t *testing.T) {
	p := project(
		storage.Environment{Value: 150000, Completed: true},
		storage.Environment{Value: 999900}, // not completed, must not count
	)
	p.CommissionPercentage = 0.5

	// 1500.00 * 0.5% = 7.50
	assert.Equal(t, storage.Cents(750), Commission(p))
}

func TestCommission_ZeroPercentage(t *testing.T) {
	p := project(storage.Environment{Value: 150000, Completed: true})
	assert.Equal(t, storage.Cents(0), Commission(p))
}

func TestHasPending(t *testing.T) {
	open := project(storage.Environment{Value: 100})
	assert.True(t, HasPending(open))

	done := project(storage.Environment{Value: 100, Completed: true})
	assert.False(t, HasPending(done))

	finished := project(storage.Environment{Value: 100})
	finished.Status = storage.StatusFinished
	assert.False(t, HasPending(finished))
}

func TestFilter(t *testing.T) {
	projects := []*storage.Project{
		{ID: "1", ClientName: "Acme Marmores", OrderNumber: "P-100", Status: storage.StatusWaiting},
		{ID: "2", ClientName: "Construtora Beta", OrderNumber: "P-200", Status: storage.StatusFinished},
		{ID: "3", ClientName: "Gamma", OrderNumber: "ACME-3", Status: storage.StatusWaiting},
	}

	// case-insensitive substring on client name OR order number
	got := Filter(projects, "acme", "")
	assert.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	// status narrows further (logical AND)
	got = Filter(projects, "acme", storage.StatusWaiting)
	assert.Len(t, got, 2)

	got = Filter(projects, "", storage.StatusFinished)
	assert.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	// sentinel matches everything
	got = Filter(projects, "", storage.StatusAll)
	assert.Len(t, got, 3)
}

func TestFilter_PreservesOrder(t *testing.T) {
	projects := []*storage.Project{
		{ID: "c", ClientName: "Zeta"},
		{ID: "a", ClientName: "Zeta"},
		{ID: "b", ClientName: "Zeta"},
	}

	got := Filter(projects, "zeta", "")
	assert.Equal(t, []string{"c", "a", "b"}, []string{got[0].ID, got[1].ID, got[2].ID})
}
