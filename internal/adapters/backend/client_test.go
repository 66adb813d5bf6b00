package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrapedesk/internal/core/domain"
	"scrapedesk/internal/core/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Options{BaseURL: srv.URL + "/api/"})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient(Options{})
	require.Error(t, err)
}

func TestListCategories(t *testing.T) {
	var got map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/categories", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"section":"A","name":"Cat1","slug":"c1"},{"section":"B","name":"Cat2","jump_name":"j2","channel":"topic","topic_id":7,"supported":true}]`)
	})

	categories, err := client.ListCategories(context.Background(), domain.Credential{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"username": "alice", "password": "pw"}, got)
	require.Len(t, categories, 2)
	require.Equal(t, "c1", categories[0].Slug)
	require.Equal(t, "j2", categories[1].JumpName)
	topicID, ok := categories[1].TopicID.Int()
	require.True(t, ok)
	require.Equal(t, int64(7), topicID)
	require.True(t, *categories[1].Supported)
}

func TestListCategoriesRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"bad login"}`)
	})

	_, err := client.ListCategories(context.Background(), domain.Credential{Username: "a", Password: "b"})
	var rejected *domain.RequestRejected
	require.True(t, errors.As(err, &rejected))
	require.Equal(t, http.StatusBadRequest, rejected.Status)
	require.Equal(t, "bad login", rejected.Message)
	require.Equal(t, map[string]any{"message": "bad login"}, rejected.Payload)
}

func TestRejectedWithoutJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "upstream down")
	})

	_, err := client.ListCategories(context.Background(), domain.Credential{Username: "a", Password: "b"})
	var rejected *domain.RequestRejected
	require.True(t, errors.As(err, &rejected))
	require.Empty(t, rejected.Message)
	require.Equal(t, "upstream down", rejected.Payload)
}

func TestMalformedResponseIsTransportFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{not json`)
	})

	_, err := client.ListCategories(context.Background(), domain.Credential{Username: "a", Password: "b"})
	var failure *domain.TransportFailure
	require.True(t, errors.As(err, &failure))
	require.Equal(t, "categories", failure.Op)
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewClient(Options{BaseURL: url})
	require.NoError(t, err)

	_, err = client.Scrape(context.Background(), ports.ScrapeRequest{Username: "a", Password: "b", Category: "c", Pages: 1})
	var failure *domain.TransportFailure
	require.True(t, errors.As(err, &failure))
	require.Equal(t, "scrape", failure.Op)
}

func TestScrapeKeepsRawVideos(t *testing.T) {
	const video = `{"title":"v1","id":3,"tags":"x y","video_hls":"https://h/1.m3u8","extra":{"k":1}}`
	var got ports.ScrapeRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/scrape", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"videos":[`+video+`],"category":{"channel":"ch","topic_meta":{"title":"T","vip_price":9.5}},"account":{"vip_level":2,"is_vip":true}}`)
	})

	result, err := client.Scrape(context.Background(), ports.ScrapeRequest{Username: "a", Password: "b", Category: "c1", Pages: 3})
	require.NoError(t, err)
	require.Equal(t, ports.ScrapeRequest{Username: "a", Password: "b", Category: "c1", Pages: 3}, got)

	require.Len(t, result.Videos, 1)
	require.Equal(t, video, string(result.Videos[0].Raw))
	require.Equal(t, "x y", result.Videos[0].Tags.Text)
	require.Equal(t, "https://h/1.m3u8", result.Videos[0].HLS())
	require.Equal(t, "ch", result.Category.Channel)
	require.Equal(t, "T", result.Category.TopicMeta.Title)
	vipPrice, ok := result.Category.TopicMeta.VipPrice.Float()
	require.True(t, ok)
	require.Equal(t, 9.5, vipPrice)
	require.True(t, *result.Account.IsVip)
}

func TestScrapeMissingFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	})

	result, err := client.Scrape(context.Background(), ports.ScrapeRequest{Username: "a", Password: "b", Category: "c", Pages: 1})
	require.NoError(t, err)
	require.Empty(t, result.Videos)
	require.Nil(t, result.Category.TopicMeta)
}

func TestScrapeToleratesStringNumbers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"videos":[{"id":"12","title":"a","duration_seconds":"125"},{"id":13,"title":"b"}],`+
			`"category":{"topic_meta":{"title":"T","price":"9.90","vip_price":"free"}}}`)
	})

	result, err := client.Scrape(context.Background(), ports.ScrapeRequest{Username: "a", Password: "b", Category: "c", Pages: 1})
	require.NoError(t, err)
	require.Len(t, result.Videos, 2)

	id, ok := result.Videos[0].ID.Int()
	require.True(t, ok)
	require.Equal(t, int64(12), id)
	seconds, ok := result.Videos[0].DurationSeconds.Float()
	require.True(t, ok)
	require.Equal(t, 125.0, seconds)
	require.Equal(t, "13", result.Videos[1].ID.String())

	meta := result.Category.TopicMeta
	require.Equal(t, "9.9", meta.Price.String())
	require.Equal(t, "free", meta.VipPrice.String())
}

func TestListCategoriesToleratesStringTopicID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"section":"A","name":"Cat1","topic_id":"7"},{"section":"B","name":"Cat2","topic_id":"t-8"}]`)
	})

	categories, err := client.ListCategories(context.Background(), domain.Credential{Username: "a", Password: "b"})
	require.NoError(t, err)
	require.Len(t, categories, 2)
	topicID, ok := categories[0].TopicID.Int()
	require.True(t, ok)
	require.Equal(t, int64(7), topicID)
	require.Equal(t, "t-8", categories[1].TopicID.String())
}
