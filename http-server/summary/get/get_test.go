package get

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"marmoraria-pro/internal/storage"
)

type MockProjectProvider struct {
	mock.Mock
}

func (m *MockProjectProvider) GetProject(ctx context.Context, id string) (*storage.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Project), args.Error(1)
}

type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summary(ctx context.Context, p *storage.Project) string {
	args := m.Called(ctx, p)
	return args.String(0)
}

func summaryRequest(t *testing.T, provider *MockProjectProvider, summarizer *MockSummarizer, target string) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	router.Get("/api/projects/{id}/summary", GetSummary(slog.Default(), provider, summarizer))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestGetSummary_Success(t *testing.T) {
	project := &storage.Project{ID: "p1", ClientName: "Acme"}

	mockProvider := new(MockProjectProvider)
	mockProvider.On("GetProject", mock.Anything, "p1").Return(project, nil)

	mockSummarizer := new(MockSummarizer)
	mockSummarizer.On("Summary", mock.Anything, project).
		Return("Projeto em ritmo bom. Priorize a medição pendente.")

	rr := summaryRequest(t, mockProvider, mockSummarizer, "/api/projects/p1/summary")

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "Projeto em ritmo bom. Priorize a medição pendente.", resp.Summary)

	mockProvider.AssertExpectations(t)
	mockSummarizer.AssertExpectations(t)
}

func TestGetSummary_NotFound(t *testing.T) {
	mockProvider := new(MockProjectProvider)
	mockProvider.On("GetProject", mock.Anything, "ghost").Return(nil, storage.ErrProjectNotFound)

	mockSummarizer := new(MockSummarizer)

	rr := summaryRequest(t, mockProvider, mockSummarizer, "/api/projects/ghost/summary")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	mockSummarizer.AssertNotCalled(t, "Summary")
}
