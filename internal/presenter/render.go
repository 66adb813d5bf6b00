// Package presenter turns scrape results into terminal output.
package presenter

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"scrapedesk/internal/core/domain"
)

// RenderTopicPanel renders the topic metadata block. visible is false when
// there is nothing to show, in which case the panel must be hidden.
func RenderTopicPanel(meta *domain.TopicMeta) (out string, visible bool) {
	if meta.Empty() {
		return "", false
	}

	t := newTable()
	t.SetTitle("Topic")
	t.AppendRow(table.Row{"Title", orDefault(meta.Title, Placeholder)})
	t.AppendRow(table.Row{"Description", orDefault(meta.Desc, Placeholder)})
	t.AppendSeparator()
	t.AppendRow(table.Row{"Price", formatNumeric(meta.Price)})
	t.AppendRow(table.Row{"VIP price", formatNumeric(meta.VipPrice)})
	if meta.File != "" {
		t.AppendSeparator()
		t.AppendRow(table.Row{resourceLinkText, meta.File})
	}
	return t.Render(), true
}

// Summary is the result counter line.
func Summary(n int) string {
	if n == 0 {
		return "0 results"
	}
	return fmt.Sprintf("%d videos", n)
}

// RenderVideoList renders the counter followed by one row per video, or the
// empty placeholder.
func RenderVideoList(videos []domain.Video) string {
	var b strings.Builder
	b.WriteString(Summary(len(videos)))
	b.WriteString("\n")

	if len(videos) == 0 {
		b.WriteString(NoResults)
		b.WriteString("\n")
		return b.String()
	}

	t := newTable()
	t.AppendHeader(table.Row{"#", "Title", "ID", "Tags", "Duration", "Streams", "Page"})
	for i, v := range videos {
		card := NewCard(i, v)
		t.AppendRow(table.Row{card.Index, card.Title, card.ID, card.Tags, card.Duration, formatBadges(card.Streams), orDefault(card.DetailURL, Placeholder)})
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// RenderCategories renders the selectable catalog. selected is -1 when no
// entry is selected.
func RenderCategories(categories []domain.Category, selected int) string {
	if len(categories) == 0 {
		return "no categories loaded\n"
	}

	t := newTable()
	t.AppendHeader(table.Row{"", "#", "Category", "Identifier", "Channel", "Supported"})
	for i, c := range categories {
		marker := ""
		if i == selected {
			marker = "*"
		}
		supported := Placeholder
		if c.Supported != nil {
			supported = fmt.Sprintf("%t", *c.Supported)
		}
		t.AppendRow(table.Row{marker, i, c.Label(), c.Identifier(), orDefault(c.Channel, Placeholder), supported})
	}
	return t.Render() + "\n"
}
