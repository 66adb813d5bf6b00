package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"scrapedesk/internal/activity"
	"scrapedesk/internal/core/domain"
	"scrapedesk/internal/core/ports"
)

const (
	MinPages     = 1
	MaxPages     = 5
	DefaultPages = 1
)

// ResultSink receives every applied result set.
type ResultSink interface {
	Present(videos []domain.Video, meta *domain.TopicMeta)
}

// Orchestrator submits scrape jobs and applies their results.
type Orchestrator struct {
	backend  ports.Backend
	state    *ClientState
	sink     ResultSink
	storage  ports.Storage
	activity *activity.Log
	notify   ports.Notifier
	logger   *slog.Logger

	// serializes apply+present so the display always matches the state
	applyMu sync.Mutex
}

// NewOrchestrator creates a new Orchestrator. storage may be nil, which
// disables job exports.
func NewOrchestrator(
	backend ports.Backend,
	state *ClientState,
	sink ResultSink,
	storage ports.Storage,
	events *activity.Log,
	notify ports.Notifier,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		backend:  backend,
		state:    state,
		sink:     sink,
		storage:  storage,
		activity: events,
		notify:   notify,
		logger:   logger,
	}
}

// ParsePages reads the page count field. An empty field means DefaultPages.
func ParsePages(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultPages, nil
	}
	pages, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pagesError()
	}
	if err := validatePages(pages); err != nil {
		return 0, err
	}
	return pages, nil
}

func validatePages(pages int) error {
	if pages < MinPages || pages > MaxPages {
		return pagesError()
	}
	return nil
}

func pagesError() error {
	return &domain.ValidationError{
		Field:   "pages",
		Message: fmt.Sprintf("pages should be between %d and %d", MinPages, MaxPages),
	}
}

// Submit runs one scrape job for category. Only the response of the most
// recent submission is applied; an older one that resolves late is dropped.
// Failures are reported to the operator and leave the displayed results as
// they were.
func (o *Orchestrator) Submit(ctx context.Context, cred domain.Credential, category domain.Category, pages int) (*domain.JobResult, error) {
	if err := validatePages(pages); err != nil {
		return nil, err
	}

	job := domain.Job{
		ID:         uuid.New().String(),
		Generation: o.state.nextGeneration(),
		Category:   category.Identifier(),
		Label:      category.Label(),
		Pages:      pages,
		CreatedAt:  time.Now().UTC(),
	}
	result := &domain.JobResult{Job: job}
	logger := o.logger.With("job", job.ID)

	logger.Info("submitting scrape", "category", job.Category, "pages", pages, "generation", job.Generation)
	o.activity.Record("scrape started...", map[string]any{"category": category.Name, "pages": pages})

	res, err := o.backend.Scrape(ctx, ports.ScrapeRequest{
		Username: cred.Username,
		Password: cred.Password,
		Category: job.Category,
		Pages:    pages,
	})
	if err != nil {
		result.ErrorMessage = err.Error()
		reportFailure(o.notify, o.activity, logger, "scrape", err)
		return result, err
	}
	result.Result = res

	videos := res.Videos
	if videos == nil {
		videos = []domain.Video{}
	}
	meta := res.Category.TopicMeta

	o.applyMu.Lock()
	applied := o.state.applyResult(job.Generation, videos, meta)
	if applied {
		o.sink.Present(videos, meta)
	}
	o.applyMu.Unlock()

	result.CompletedAt = time.Now().UTC()
	if !applied {
		logger.Info("discarding stale scrape result", "generation", job.Generation)
		o.activity.Record("discarded stale scrape result", map[string]any{"job": job.ID, "category": category.Name})
		return result, nil
	}
	result.Applied = true

	summary := map[string]any{"channel": res.Category.Channel}
	if res.Account != nil {
		summary["account"] = res.Account
	}
	o.activity.Record(fmt.Sprintf("scrape complete, %d videos", len(videos)), summary)
	logger.Info("scrape applied", "videos", len(videos))

	if o.storage != nil {
		path, err := o.export(ctx, job, res.Raw)
		if err != nil {
			logger.Warn("export failed", "err", err)
			o.activity.Record("export failed", map[string]any{"job": job.ID, "error": err.Error()})
		} else {
			result.ExportPath = path
			o.activity.Record("result exported", map[string]any{"path": path})
		}
	}
	return result, nil
}

func (o *Orchestrator) export(ctx context.Context, job domain.Job, raw []byte) (string, error) {
	if err := o.storage.InitJob(ctx, job.ID); err != nil {
		return "", err
	}
	input, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return "", err
	}
	if err := o.storage.SaveInput(ctx, job.ID, input); err != nil {
		return "", err
	}
	if err := o.storage.SaveResult(ctx, job.ID, raw); err != nil {
		return "", err
	}
	return o.storage.GetJobPath(job.ID), nil
}
