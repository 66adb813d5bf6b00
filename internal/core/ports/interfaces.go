package ports

import (
	"context"

	"scrapedesk/internal/core/domain"
)

// Backend defines the contract of the scraping backend.
type Backend interface {
	// ListCategories returns the scrapable categories in backend order.
	ListCategories(ctx context.Context, cred domain.Credential) ([]domain.Category, error)

	// Scrape runs a job for the category identifier over the given page count.
	Scrape(ctx context.Context, req ScrapeRequest) (*domain.ScrapeResult, error)
}

// ScrapeRequest is the body of a scrape call.
type ScrapeRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Category string `json:"category"`
	Pages    int    `json:"pages"`
}

// Notifier surfaces a message the operator has to see right away.
type Notifier interface {
	Alert(message string)
}

// Storage defines the contract for exporting job artifacts.
type Storage interface {
	// InitJob creates the job directory structure.
	InitJob(ctx context.Context, jobID string) error

	// SaveInput saves the job input (category, pages, timestamp).
	SaveInput(ctx context.Context, jobID string, data []byte) error

	// SaveResult saves the raw backend response without modification.
	SaveResult(ctx context.Context, jobID string, data []byte) error

	// GetJobPath returns the filesystem path for a given job ID.
	GetJobPath(jobID string) string
}
