package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"marmoraria-pro/internal/storage"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (s *stubGenerator) GenerateProjectSummary(context.Context, *storage.Project) (string, error) {
	s.calls++
	return s.text, s.err
}

func testProject() *storage.Project {
	return &storage.Project{
		ID:         "p1",
		ClientName: "Acme",
		Status:     storage.StatusInProgress,
		Environments: []storage.Environment{
			{Name: "Cozinha", Value: 150000},
		},
	}
}

func TestSummary_CachesPerProject(t *testing.T) {
	gen := &stubGenerator{text: "Projeto saudável. Priorize a cozinha."}
	svc := NewService(gen, time.Second)

	p := testProject()
	first := svc.Summary(context.Background(), p)
	second := svc.Summary(context.Background(), p)

	assert.Equal(t, "Projeto saudável. Priorize a cozinha.", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, gen.calls, "second call must hit the cache")
}

func TestSummary_ErrorFallsBack(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	svc := NewService(gen, time.Second)

	got := svc.Summary(context.Background(), testProject())
	assert.Equal(t, FallbackError, got)
}

func TestSummary_FailuresNotCached(t *testing.T) {
	gen := &stubGenerator{err: errors.New("boom")}
	svc := NewService(gen, time.Second)

	p := testProject()
	svc.Summary(context.Background(), p)

	gen.err = nil
	gen.text = "Recuperado."
	assert.Equal(t, "Recuperado.", svc.Summary(context.Background(), p))
	assert.Equal(t, 2, gen.calls)
}

func TestSummary_EmptyTextFallsBack(t *testing.T) {
	gen := &stubGenerator{text: "   "}
	svc := NewService(gen, time.Second)

	got := svc.Summary(context.Background(), testProject())
	assert.Equal(t, FallbackUnavailable, got)
}

func TestSummary_UnavailableGenerator(t *testing.T) {
	svc := NewService(Unavailable{}, time.Second)
	assert.Equal(t, FallbackError, svc.Summary(context.Background(), testProject()))
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(testProject())
	assert.Contains(t, prompt, "Acme")
	assert.Contains(t, prompt, "Em Andamento")
	assert.Contains(t, prompt, "Cozinha (R$ 1500.00)")
}
