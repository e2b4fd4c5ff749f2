// Package sheetsync runs the fetch-parse-replace cycle against the shop's
// published Google sheet.
package sheetsync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"marmoraria-pro/internal/service/planilha"
	"marmoraria-pro/internal/storage"
)

// ErrNoValidRows means the sheet fetched fine but no row survived parsing,
// usually a wrong link or a changed layout.
var ErrNoValidRows = errors.New("planilha sem dados válidos")

type ExternalStore interface {
	ReplaceExternalProjects(ctx context.Context, projects []*storage.Project) error
}

type Service struct {
	storage ExternalStore
	parser  planilha.Parser
	client  *http.Client
	group   singleflight.Group
}

// New wires the sync service. The timeout covers the whole sheet download,
// a timed-out fetch fails the same way a network error does.
func New(store ExternalStore, parser planilha.Parser, timeout time.Duration) *Service {
	return &Service{
		storage: store,
		parser:  parser,
		client:  &http.Client{Timeout: timeout},
	}
}

// Sync downloads the published CSV, parses it and swaps the external
// project set in one storage transaction. Concurrent triggers for the same
// URL collapse into a single flight, so overlapping syncs cannot race.
// Returns how many projects the sheet produced.
func (s *Service) Sync(ctx context.Context, url string) (int, error) {
	const op = "service.sheetsync.Sync"

	count, err, _ := s.group.Do(url, func() (any, error) {
		projects, err := s.fetchAndParse(ctx, url)
		if err != nil {
			return 0, err
		}
		if len(projects) == 0 {
			return 0, ErrNoValidRows
		}

		if err := s.storage.ReplaceExternalProjects(ctx, projects); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		return len(projects), nil
	})
	if err != nil {
		return 0, err
	}

	return count.(int), nil
}

func (s *Service) fetchAndParse(ctx context.Context, url string) ([]*storage.Project, error) {
	const op = "service.sheetsync.fetchAndParse"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: planilha respondeu %d", op, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	projects, err := s.parser.Parse(string(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return projects, nil
}
