package presenter

import (
	"fmt"
	"io"

	"scrapedesk/internal/core/domain"
)

// Source gives positional access to the last received result set.
type Source interface {
	Video(index int) (domain.Video, bool)
}

// Presenter writes result panels to out and owns the detail view.
type Presenter struct {
	out    io.Writer
	source Source
	detail DetailView
}

// New creates a Presenter reading videos from source.
func New(out io.Writer, source Source) *Presenter {
	return &Presenter{out: out, source: source}
}

// Present renders the topic panel and video list of one result set. Both
// always come from the same job.
func (p *Presenter) Present(videos []domain.Video, meta *domain.TopicMeta) {
	p.detail.Close()
	if panel, ok := RenderTopicPanel(meta); ok {
		fmt.Fprintln(p.out, panel)
	}
	fmt.Fprint(p.out, RenderVideoList(videos))
}

// ShowDetail opens the detail view for the video at index. An index outside
// the current result set is ignored.
func (p *Presenter) ShowDetail(index int) bool {
	v, ok := p.source.Video(index)
	if !ok {
		return false
	}
	p.detail.Open(index, v)
	fmt.Fprintf(p.out, "== %s ==\n%s\n", p.detail.Title(), p.detail.Body())
	if v.DetailURL != "" {
		fmt.Fprintf(p.out, "original page: %s\n", v.DetailURL)
	}
	return true
}

// CloseDetail dismisses the detail view.
func (p *Presenter) CloseDetail() {
	p.detail.Dispatch(TriggerClose)
}

// Dismiss routes a dismissal trigger to the detail view, if open.
func (p *Presenter) Dismiss(t Trigger) bool {
	return p.detail.Dispatch(t)
}

// Detail exposes the detail view state.
func (p *Presenter) Detail() *DetailView {
	return &p.detail
}
