package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"scrapedesk/internal/core/domain"
	"scrapedesk/internal/core/ports"
)

const (
	categoriesPath = "/categories"
	scrapePath     = "/scrape"
)

// Client implements ports.Backend over the JSON HTTP API.
type Client struct {
	http *resty.Client
}

// Options configures a Client.
type Options struct {
	BaseURL string
	// Timeout bounds a single request. Zero means no limit.
	Timeout time.Duration
}

// NewClient creates a new Client.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("backend base url not set")
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(opts.BaseURL, "/"))
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return &Client{http: client}, nil
}

// ListCategories posts the credential pair and decodes the ordered category list.
func (c *Client) ListCategories(ctx context.Context, cred domain.Credential) ([]domain.Category, error) {
	body, err := c.post(ctx, categoriesPath, cred)
	if err != nil {
		return nil, err
	}

	var categories []domain.Category
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, &domain.TransportFailure{Op: "categories", Err: fmt.Errorf("decode response: %w", err)}
	}
	return categories, nil
}

// Scrape submits a job and decodes the result, keeping each video's raw bytes.
func (c *Client) Scrape(ctx context.Context, req ports.ScrapeRequest) (*domain.ScrapeResult, error) {
	body, err := c.post(ctx, scrapePath, req)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Videos   []json.RawMessage   `json:"videos"`
		Category domain.CategoryEcho `json:"category"`
		Account  *domain.Account     `json:"account"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &domain.TransportFailure{Op: "scrape", Err: fmt.Errorf("decode response: %w", err)}
	}

	result := &domain.ScrapeResult{
		Videos:   make([]domain.Video, 0, len(payload.Videos)),
		Category: payload.Category,
		Account:  payload.Account,
		Raw:      body,
	}
	for i, raw := range payload.Videos {
		var video domain.Video
		if err := json.Unmarshal(raw, &video); err != nil {
			return nil, &domain.TransportFailure{Op: "scrape", Err: fmt.Errorf("decode video %d: %w", i, err)}
		}
		video.Raw = raw
		result.Videos = append(result.Videos, video)
	}
	return result, nil
}

func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	op := strings.TrimPrefix(path, "/")

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return nil, &domain.TransportFailure{Op: op, Err: err}
	}

	if !res.IsSuccess() {
		return nil, rejection(res.StatusCode(), res.Body())
	}
	return res.Body(), nil
}

func rejection(status int, body []byte) *domain.RequestRejected {
	rejected := &domain.RequestRejected{Status: status}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		rejected.Payload = string(body)
		return rejected
	}
	rejected.Payload = payload
	if msg, ok := payload["message"].(string); ok {
		rejected.Message = msg
	}
	return rejected
}
