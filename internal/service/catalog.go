package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"scrapedesk/internal/activity"
	"scrapedesk/internal/core/domain"
	"scrapedesk/internal/core/ports"
)

// Catalog loads and indexes the scrapable categories.
type Catalog struct {
	backend  ports.Backend
	state    *ClientState
	activity *activity.Log
	notify   ports.Notifier
	logger   *slog.Logger
}

// NewCatalog creates a new Catalog.
func NewCatalog(
	backend ports.Backend,
	state *ClientState,
	events *activity.Log,
	notify ports.Notifier,
	logger *slog.Logger,
) *Catalog {
	return &Catalog{
		backend:  backend,
		state:    state,
		activity: events,
		notify:   notify,
		logger:   logger,
	}
}

// Load fetches the catalog and replaces the current one. On failure the
// operator is alerted and the existing catalog and selection stay as they were.
func (c *Catalog) Load(ctx context.Context, cred domain.Credential) ([]domain.Category, error) {
	c.activity.Record("loading categories...", nil)

	categories, err := c.backend.ListCategories(ctx, cred)
	if err != nil {
		reportFailure(c.notify, c.activity, c.logger, "category load", err)
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	c.state.replaceCategories(categories)
	c.activity.Record(fmt.Sprintf("loaded %d categories", len(categories)), nil)
	c.logger.Info("catalog loaded", "count", len(categories))
	return categories, nil
}

// ResolveSelection returns the selected category.
func (c *Catalog) ResolveSelection() (domain.Category, error) {
	c.state.mu.RLock()
	defer c.state.mu.RUnlock()

	if len(c.state.categories) == 0 || c.state.selected == NoSelection {
		return domain.Category{}, &domain.SelectionError{Message: "load and select a category first"}
	}
	return c.state.categories[c.state.selected], nil
}

// SelectByIdentifier selects the single category whose jump name, slug or
// name equals identifier, ignoring case.
func (c *Catalog) SelectByIdentifier(identifier string) (domain.Category, error) {
	want := strings.ToLower(strings.TrimSpace(identifier))
	if want == "" {
		return domain.Category{}, &domain.SelectionError{Message: "category must not be empty"}
	}

	categories := c.state.Categories()
	var matches []int
	for i, cat := range categories {
		for _, key := range []string{cat.JumpName, cat.Slug, cat.Name} {
			if key != "" && strings.ToLower(key) == want {
				matches = append(matches, i)
				break
			}
		}
	}

	switch len(matches) {
	case 0:
		return domain.Category{}, &domain.SelectionError{Message: fmt.Sprintf("category not found: %s", identifier)}
	case 1:
		if err := c.state.Select(matches[0]); err != nil {
			return domain.Category{}, err
		}
		return categories[matches[0]], nil
	default:
		labels := make([]string, len(matches))
		for i, idx := range matches {
			labels[i] = categories[idx].Label()
		}
		return domain.Category{}, &domain.SelectionError{
			Message: fmt.Sprintf("category %q is ambiguous: %s", identifier, strings.Join(labels, ", ")),
		}
	}
}
