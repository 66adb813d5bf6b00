package presenter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"scrapedesk/internal/core/domain"
)

type sliceSource []domain.Video

func (s sliceSource) Video(i int) (domain.Video, bool) {
	if i < 0 || i >= len(s) {
		return domain.Video{}, false
	}
	return s[i], true
}

func decodeVideo(t *testing.T, raw string) domain.Video {
	t.Helper()
	var v domain.Video
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	v.Raw = json.RawMessage(raw)
	return v
}

func TestTopicPanelHidden(t *testing.T) {
	cases := map[string]*domain.TopicMeta{
		"nil":          nil,
		"empty":        {},
		"only pricing": {Price: domain.NumberOf(3), File: "https://x"},
	}
	for name, meta := range cases {
		t.Run(name, func(t *testing.T) {
			out, visible := RenderTopicPanel(meta)
			require.False(t, visible)
			require.Empty(t, out)
		})
	}
}

func TestTopicPanelVisible(t *testing.T) {
	out, visible := RenderTopicPanel(&domain.TopicMeta{Title: "Summer", VipPrice: domain.NumberOf(9.5)})
	require.True(t, visible)
	require.Contains(t, out, "Summer")
	require.Contains(t, out, "9.5")
	require.NotContains(t, out, resourceLinkText)

	out, _ = RenderTopicPanel(&domain.TopicMeta{Desc: "d", File: "https://res/file"})
	require.Contains(t, out, resourceLinkText)
	require.Contains(t, out, "https://res/file")
}

func TestFormatTags(t *testing.T) {
	require.Equal(t, "a、b", FormatTags(domain.Tags{List: []string{"a", "b"}}))
	require.Equal(t, "a b", FormatTags(domain.Tags{Text: "a b"}))
	require.Equal(t, NoTags, FormatTags(domain.Tags{}))
	require.Equal(t, NoTags, FormatTags(domain.Tags{List: []string{}}))
}

func TestScenarioDTags(t *testing.T) {
	tagged := decodeVideo(t, `{"title":"x","tags":["a","b"]}`)
	bare := decodeVideo(t, `{"title":"y"}`)

	require.Equal(t, "a、b", NewCard(0, tagged).Tags)
	require.Equal(t, NoTags, NewCard(1, bare).Tags)
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "00:02:05", FormatDuration(domain.Video{DurationHMS: "00:02:05", DurationSeconds: domain.NumberOf(125)}))
	require.Equal(t, "125s", FormatDuration(domain.Video{DurationSeconds: domain.NumberOf(125)}))
	require.Equal(t, "125s", FormatDuration(decodeVideo(t, `{"duration_seconds":"125"}`)))
	require.Equal(t, "2m5s", FormatDuration(decodeVideo(t, `{"duration_seconds":"2m5s"}`)))
	require.Equal(t, UnknownDuration, FormatDuration(domain.Video{DurationSeconds: domain.NumberOf(0)}))
	require.Equal(t, UnknownDuration, FormatDuration(domain.Video{}))
}

func TestNewCard(t *testing.T) {
	v := decodeVideo(t, `{"id":42,"title":"clip","video_mp4":"https://m/1.mp4","video_m3u8":"https://m/1.m3u8","detail_url":"https://d/42"}`)
	want := Card{
		Index:     3,
		Title:     "clip",
		ID:        "42",
		Tags:      NoTags,
		Duration:  UnknownDuration,
		Streams:   []string{"MP4", "HLS"},
		DetailURL: "https://d/42",
	}
	if diff := cmp.Diff(want, NewCard(3, v)); diff != "" {
		t.Errorf("card mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, "x-12", NewCard(0, decodeVideo(t, `{"id":"x-12"}`)).ID)
	require.Equal(t, "12", NewCard(0, decodeVideo(t, `{"id":"12"}`)).ID)

	empty := NewCard(0, domain.Video{})
	require.Equal(t, UntitledVideo, empty.Title)
	require.Equal(t, Placeholder, empty.ID)
	require.Empty(t, empty.Streams)
}

func TestRenderVideoListEmpty(t *testing.T) {
	out := RenderVideoList(nil)
	require.True(t, strings.HasPrefix(out, "0 results\n"))
	require.Contains(t, out, NoResults)
}

func TestRenderVideoList(t *testing.T) {
	out := RenderVideoList([]domain.Video{
		decodeVideo(t, `{"title":"one","tags":["a","b"]}`),
		decodeVideo(t, `{"title":"two","video_hls":"https://h","detail_url":"https://d/2"}`),
	})
	require.True(t, strings.HasPrefix(out, "2 videos\n"))
	require.Contains(t, out, "one")
	require.Contains(t, out, "https://d/2")
	require.Contains(t, out, "a、b")
	require.Contains(t, out, "HLS")
	require.NotContains(t, out, NoResults)
}

func TestRenderCategories(t *testing.T) {
	out := RenderCategories([]domain.Category{{Section: "A", Name: "Cat1", Slug: "c1"}}, 0)
	require.Contains(t, out, "[A] Cat1")
	require.Contains(t, out, "c1")
	require.Contains(t, RenderCategories(nil, -1), "no categories")
}

func TestShowDetail(t *testing.T) {
	raw := `{"title":"clip","id":1,"nested":{"z":1,"a":[1,2]}}`
	source := sliceSource{decodeVideo(t, raw)}
	var out bytes.Buffer
	p := New(&out, source)

	require.False(t, p.ShowDetail(-1))
	require.False(t, p.ShowDetail(1))
	require.False(t, p.Detail().Visible())
	require.Empty(t, out.String())

	require.True(t, p.ShowDetail(0))
	require.True(t, p.Detail().Visible())
	require.Equal(t, "clip", p.Detail().Title())
	require.Equal(t, raw, string(p.Detail().Record()))

	var compact bytes.Buffer
	require.NoError(t, json.Compact(&compact, []byte(p.Detail().Body())))
	require.Equal(t, raw, compact.String())
	require.Contains(t, out.String(), "== clip ==")
}

func TestShowDetailUntitled(t *testing.T) {
	p := New(&bytes.Buffer{}, sliceSource{decodeVideo(t, `{"id":1}`)})
	require.True(t, p.ShowDetail(0))
	require.Equal(t, DetailTitle, p.Detail().Title())
}

func TestDismissTriggers(t *testing.T) {
	for _, trigger := range []Trigger{TriggerClose, TriggerOutside, TriggerEscape} {
		p := New(&bytes.Buffer{}, sliceSource{decodeVideo(t, `{"title":"a"}`)})
		require.True(t, p.ShowDetail(0))
		require.True(t, p.Dismiss(trigger))
		require.False(t, p.Detail().Visible())

		// subscriptions are gone once closed
		require.False(t, p.Dismiss(trigger))
		p.CloseDetail()
		require.False(t, p.Detail().Visible())
	}
}

func TestPresentClosesDetail(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, sliceSource{decodeVideo(t, `{"title":"a"}`)})
	require.True(t, p.ShowDetail(0))

	out.Reset()
	p.Present(nil, &domain.TopicMeta{})
	require.False(t, p.Detail().Visible())
	require.NotContains(t, out.String(), "Topic")
	require.Contains(t, out.String(), NoResults)
}
