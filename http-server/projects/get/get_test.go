package get

import (
	"context"
	"errors"
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

func (m *MockProjectProvider) GetProjects(ctx context.Context) ([]*storage.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.Project), args.Error(1)
}

func (m *MockProjectProvider) GetProject(ctx context.Context, id string) (*storage.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Project), args.Error(1)
}

func sampleProjects() []*storage.Project {
	return []*storage.Project{
		{
			ID:         "p1",
			ClientName: "Acme",
			Status:     storage.StatusInProgress,
			Environments: []storage.Environment{
				{Name: "Cozinha", Value: 150000, Completed: true},
				{Name: "Banheiro", Value: 80000},
			},
			CommissionPercentage: 0.5,
		},
		{
			ID:         "p2",
			ClientName: "Beta",
			Status:     storage.StatusFinished,
			Environments: []storage.Environment{
				{Name: "Sala", Value: 50000, Completed: true},
			},
			CommissionPercentage: 0.5,
		},
	}
}

func TestGetProjectsFilter_Success(t *testing.T) {
	mockStorage := new(MockProjectProvider)
	mockStorage.On("GetProjects", mock.Anything).Return(sampleProjects(), nil)

	handler := GetProjectsFilter(slog.Default(), mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp ResponseProjects
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)

	assert.Len(t, resp.Projects, 2)
	assert.Equal(t, "Acme", resp.Projects[0].ClientName)
	assert.Equal(t, storage.Cents(230000), resp.Projects[0].Total)
	assert.Equal(t, storage.Cents(150000), resp.Projects[0].CompletedTotal)
	assert.True(t, resp.Projects[0].Pending)
	assert.False(t, resp.Projects[1].Pending)
	assert.Empty(t, resp.Error)

	mockStorage.AssertExpectations(t)
}

func TestGetProjectsFilter_SearchAndStatus(t *testing.T) {
	mockStorage := new(MockProjectProvider)
	mockStorage.On("GetProjects", mock.Anything).Return(sampleProjects(), nil)

	handler := GetProjectsFilter(slog.Default(), mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/projects?search=acme&status=Em+Andamento", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp ResponseProjects
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)

	assert.Len(t, resp.Projects, 1)
	assert.Equal(t, "p1", resp.Projects[0].ID)
}

func TestGetProjectsFilter_DBError(t *testing.T) {
	mockStorage := new(MockProjectProvider)
	mockStorage.On("GetProjects", mock.Anything).Return(nil, errors.New("connection timeout"))

	handler := GetProjectsFilter(slog.Default(), mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "não foi possível carregar os projetos")

	mockStorage.AssertExpectations(t)
}

func TestGetProject_Success(t *testing.T) {
	mockStorage := new(MockProjectProvider)
	mockStorage.On("GetProject", mock.Anything, "p1").Return(sampleProjects()[0], nil)

	router := chi.NewRouter()
	router.Get("/api/projects/{id}", GetProject(slog.Default(), mockStorage))

	req := httptest.NewRequest(http.MethodGet, "/api/projects/p1", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp ProjectView
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)

	assert.Equal(t, "Acme", resp.ClientName)
	assert.Equal(t, storage.Cents(750), resp.Commission, "0.5% of the completed 1500.00")

	mockStorage.AssertExpectations(t)
}

func TestGetProject_NotFound(t *testing.T) {
	mockStorage := new(MockProjectProvider)
	mockStorage.On("GetProject", mock.Anything, "ghost").Return(nil, storage.ErrProjectNotFound)

	router := chi.NewRouter()
	router.Get("/api/projects/{id}", GetProject(slog.Default(), mockStorage))

	req := httptest.NewRequest(http.MethodGet, "/api/projects/ghost", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "projeto não encontrado")

	mockStorage.AssertExpectations(t)
}
