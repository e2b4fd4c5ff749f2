// Package summary produces the short AI assessment shown on a project card.
package summary

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"google.golang.org/genai"

	"marmoraria-pro/internal/storage"
)

// Fallback strings shown instead of an error. The summary never fails
// visibly, it degrades.
const (
	FallbackUnavailable = "Análise indisponível no momento."
	FallbackError       = "Erro ao processar análise inteligente."
)

const defaultModel = "gemini-3-flash-preview"

type Generator interface {
	GenerateProjectSummary(ctx context.Context, p *storage.Project) (string, error)
}

// GeminiGenerator calls the Gemini API with the project payload: client
// name, status and the environment name/value pairs.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiGenerator{client: client, model: defaultModel}, nil
}

func (g *GeminiGenerator) GenerateProjectSummary(ctx context.Context, p *storage.Project) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(p)), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return resp.Text(), nil
}

func buildPrompt(p *storage.Project) string {
	pairs := make([]string, 0, len(p.Environments))
	for _, env := range p.Environments {
		pairs = append(pairs, fmt.Sprintf("%s (R$ %s)", env.Name, env.Value))
	}

	return fmt.Sprintf(`Analise o status deste projeto de marmoraria:
Cliente: %s
Status: %s
Ambientes: %s

Gere uma análise rápida de 2 frases focada em produtividade e uma dica prática.`,
		p.ClientName, p.Status, strings.Join(pairs, ", "))
}

// Unavailable stands in when no API key is configured; every request falls
// back.
type Unavailable struct{}

func (Unavailable) GenerateProjectSummary(context.Context, *storage.Project) (string, error) {
	return "", fmt.Errorf("summary generator not configured")
}

// Service caches summaries per project id for the lifetime of the process.
// Edits do not invalidate the cache, stale summaries are accepted.
type Service struct {
	gen     Generator
	timeout time.Duration

	mu    sync.Mutex
	cache map[string]string
	group singleflight.Group
}

func NewService(gen Generator, timeout time.Duration) *Service {
	return &Service{
		gen:     gen,
		timeout: timeout,
		cache:   make(map[string]string),
	}
}

// Summary never returns an error: failures and timeouts degrade to a fixed
// fallback string. Only successful generations are cached, so a transient
// failure can heal on the next request.
func (s *Service) Summary(ctx context.Context, p *storage.Project) string {
	s.mu.Lock()
	if cached, ok := s.cache[p.ID]; ok {
		s.mu.Unlock()
		return cached
	}
	s.mu.Unlock()

	text, err, _ := s.group.Do(p.ID, func() (any, error) {
		genCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return s.gen.GenerateProjectSummary(genCtx, p)
	})
	if err != nil {
		return FallbackError
	}

	result := strings.TrimSpace(text.(string))
	if result == "" {
		return FallbackUnavailable
	}

	s.mu.Lock()
	s.cache[p.ID] = result
	s.mu.Unlock()

	return result
}
