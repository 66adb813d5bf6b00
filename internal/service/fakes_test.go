package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"scrapedesk/internal/core/domain"
	"scrapedesk/internal/core/ports"
)

type fakeBackend struct {
	mu sync.Mutex

	categories    []domain.Category
	categoriesErr error
	result        *domain.ScrapeResult
	scrapeErr     error
	// scrapeHook, when set, replaces the canned scrape response
	scrapeHook func(ctx context.Context, req ports.ScrapeRequest) (*domain.ScrapeResult, error)

	categoryCalls int
	scrapeCalls   []ports.ScrapeRequest
}

func (f *fakeBackend) ListCategories(ctx context.Context, cred domain.Credential) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categoryCalls++
	if f.categoriesErr != nil {
		return nil, f.categoriesErr
	}
	return f.categories, nil
}

func (f *fakeBackend) Scrape(ctx context.Context, req ports.ScrapeRequest) (*domain.ScrapeResult, error) {
	f.mu.Lock()
	f.scrapeCalls = append(f.scrapeCalls, req)
	hook, result, err := f.scrapeHook, f.result, f.scrapeErr
	f.mu.Unlock()

	if hook != nil {
		return hook(ctx, req)
	}
	return result, err
}

func (f *fakeBackend) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.categoryCalls, len(f.scrapeCalls)
}

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []string
}

func (n *recordingNotifier) Alert(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, message)
}

func (n *recordingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.alerts) == 0 {
		return ""
	}
	return n.alerts[len(n.alerts)-1]
}

func videosFromJSON(t *testing.T, raws ...string) []domain.Video {
	t.Helper()
	videos := make([]domain.Video, len(raws))
	for i, raw := range raws {
		require.NoError(t, json.Unmarshal([]byte(raw), &videos[i]))
		videos[i].Raw = json.RawMessage(raw)
	}
	return videos
}
