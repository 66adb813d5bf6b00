package presenter

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"scrapedesk/internal/core/domain"
)

const (
	Placeholder      = "-"
	NoTags           = "no tags"
	UnknownDuration  = "unknown"
	UntitledVideo    = "untitled video"
	DetailTitle      = "video detail"
	NoStreams        = "none"
	NoResults        = "no matching videos"
	TagSeparator     = "、"
	badgeMP4         = "MP4"
	badgeHLS         = "HLS"
	resourceLinkText = "open resource"
)

// Card is the display form of one video.
type Card struct {
	Index     int
	Title     string
	ID        string
	Tags      string
	Duration  string
	Streams   []string
	DetailURL string
}

// NewCard builds the card for the video at position index.
func NewCard(index int, v domain.Video) Card {
	return Card{
		Index:     index,
		Title:     orDefault(v.Title, UntitledVideo),
		ID:        formatNumeric(v.ID),
		Tags:      FormatTags(v.Tags),
		Duration:  FormatDuration(v),
		Streams:   Streams(v),
		DetailURL: v.DetailURL,
	}
}

// FormatTags joins list tags with TagSeparator and passes string tags through.
func FormatTags(tags domain.Tags) string {
	return orDefault(tags.Join(TagSeparator), NoTags)
}

// FormatDuration prefers the preformatted hms value, then raw seconds. Text
// that is not a number is shown as sent.
func FormatDuration(v domain.Video) string {
	if v.DurationHMS != "" {
		return v.DurationHMS
	}
	if seconds, ok := v.DurationSeconds.Float(); ok {
		if seconds != 0 {
			return formatNumber(seconds) + "s"
		}
		return UnknownDuration
	}
	return orDefault(v.DurationSeconds.Text, UnknownDuration)
}

// Streams lists the badges of the stream kinds the video offers.
func Streams(v domain.Video) []string {
	var badges []string
	if v.VideoMP4 != "" {
		badges = append(badges, badgeMP4)
	}
	if v.HLS() != "" {
		badges = append(badges, badgeHLS)
	}
	return badges
}

// formatNumeric renders ids and prices, which may have arrived as text.
func formatNumeric(n domain.Number) string {
	return orDefault(n.String(), Placeholder)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatBadges(badges []string) string {
	if len(badges) == 0 {
		return NoStreams
	}
	colored := make([]string, len(badges))
	for i, b := range badges {
		colored[i] = text.Colors{text.FgHiCyan}.Sprint(b)
	}
	return strings.Join(colored, " ")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}
