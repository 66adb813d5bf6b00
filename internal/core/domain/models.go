package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Credential is the username/password pair sent with every backend request.
// It is built per operation and never stored.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Category is a scrapable content bucket as listed by the backend.
type Category struct {
	Section   string `json:"section"`
	Name      string `json:"name"`
	JumpName  string `json:"jump_name,omitempty"`
	Slug      string `json:"slug,omitempty"`
	Channel   string `json:"channel,omitempty"`
	TopicID   Number `json:"topic_id,omitzero"`
	Supported *bool  `json:"supported,omitempty"`
}

// Identifier returns the key the backend should receive for this category:
// jump_name, then slug, then name.
func (c Category) Identifier() string {
	switch {
	case c.JumpName != "":
		return c.JumpName
	case c.Slug != "":
		return c.Slug
	default:
		return c.Name
	}
}

// Label is the display text of a catalog entry.
func (c Category) Label() string {
	return "[" + c.Section + "] " + c.Name
}

// TopicMeta is the optional promotional block attached to a category echo.
type TopicMeta struct {
	Title    string `json:"title,omitempty"`
	Desc     string `json:"desc,omitempty"`
	Price    Number `json:"price,omitzero"`
	VipPrice Number `json:"vip_price,omitzero"`
	File     string `json:"file,omitempty"`
}

// Empty reports whether the block carries neither a title nor a description.
func (m *TopicMeta) Empty() bool {
	return m == nil || (m.Title == "" && m.Desc == "")
}

// Tags holds a video's tags, which the backend sends either as a list or as a
// single preformatted string.
type Tags struct {
	List []string
	Text string
}

func (t *Tags) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		t.List = list
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		t.Text = text
		return nil
	}
	// null or an unexpected shape means no tags
	return nil
}

func (t Tags) MarshalJSON() ([]byte, error) {
	if t.List != nil {
		return json.Marshal(t.List)
	}
	return json.Marshal(t.Text)
}

// Join renders the tags with sep, passing a string value through unchanged.
// It returns "" when there are no tags.
func (t Tags) Join(sep string) string {
	if len(t.List) > 0 {
		return strings.Join(t.List, sep)
	}
	return t.Text
}

// Video is one scraped record. Raw keeps the exact bytes the backend sent.
type Video struct {
	ID              Number          `json:"id,omitzero"`
	Title           string          `json:"title,omitempty"`
	Tags            Tags            `json:"tags"`
	DurationHMS     string          `json:"duration_hms,omitempty"`
	DurationSeconds Number          `json:"duration_seconds,omitzero"`
	VideoMP4        string          `json:"video_mp4,omitempty"`
	VideoM3U8       string          `json:"video_m3u8,omitempty"`
	VideoHLS        string          `json:"video_hls,omitempty"`
	DetailURL       string          `json:"detail_url,omitempty"`
	Raw             json.RawMessage `json:"-"`
}

// HLS returns the segmented-stream URL, accepting both wire spellings.
func (v Video) HLS() string {
	if v.VideoM3U8 != "" {
		return v.VideoM3U8
	}
	return v.VideoHLS
}

// CategoryEcho is the backend's description of the category it scraped.
type CategoryEcho struct {
	Section        string     `json:"section,omitempty"`
	Name           string     `json:"name,omitempty"`
	JumpName       string     `json:"jump_name,omitempty"`
	Channel        string     `json:"channel,omitempty"`
	PagesRequested int        `json:"pages_requested,omitempty"`
	VideosFound    int        `json:"videos_found,omitempty"`
	TopicMeta      *TopicMeta `json:"topic_meta,omitempty"`
}

// Account is the login summary the backend echoes with a scrape.
type Account struct {
	VipLevel any   `json:"vip_level,omitempty"`
	IsVip    *bool `json:"is_vip,omitempty"`
}

// ScrapeResult is the decoded success body of a scrape request.
type ScrapeResult struct {
	Videos   []Video      `json:"videos"`
	Category CategoryEcho `json:"category"`
	Account  *Account     `json:"account,omitempty"`
	// Raw is the undecoded response body.
	Raw []byte `json:"-"`
}

// Job represents a single scrape submission.
type Job struct {
	ID         string    `json:"job_id"`
	Generation uint64    `json:"generation"`
	Category   string    `json:"category"`
	Label      string    `json:"label"`
	Pages      int       `json:"pages"`
	CreatedAt  time.Time `json:"created_at"`
}

// JobResult holds the outcome of a submission.
type JobResult struct {
	Job          Job
	Result       *ScrapeResult
	Applied      bool
	ExportPath   string
	ErrorMessage string
	CompletedAt  time.Time
}
