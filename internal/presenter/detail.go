package presenter

import (
	"bytes"
	"encoding/json"
	"sync"

	"scrapedesk/internal/core/domain"
)

// Trigger is an input that can dismiss the detail view.
type Trigger int

const (
	TriggerClose Trigger = iota
	TriggerOutside
	TriggerEscape
)

// DetailView is the full-record inspector for a single video. Dismiss
// triggers are subscribed while the view is open and dropped on close.
type DetailView struct {
	mu     sync.Mutex
	open   bool
	index  int
	title  string
	body   string
	record json.RawMessage
	subs   map[Trigger]func()
}

// Open shows video v, found at position index.
func (d *DetailView) Open(index int, v domain.Video) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.open = true
	d.index = index
	d.title = orDefault(v.Title, DetailTitle)
	d.record = v.Raw
	d.body = indentRecord(v)
	d.subs = map[Trigger]func(){
		TriggerClose:   d.Close,
		TriggerOutside: d.Close,
		TriggerEscape:  d.Close,
	}
}

// Close hides the view. Calling it on a closed view does nothing.
func (d *DetailView) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.open = false
	d.subs = nil
}

// Dispatch delivers a trigger to the open view. It reports whether a
// subscription handled it.
func (d *DetailView) Dispatch(t Trigger) bool {
	d.mu.Lock()
	fn := d.subs[t]
	d.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Visible reports whether the view is open.
func (d *DetailView) Visible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Index returns the position of the displayed video.
func (d *DetailView) Index() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.index
}

// Title returns the heading of the view.
func (d *DetailView) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title
}

// Body returns the indented JSON of the displayed record.
func (d *DetailView) Body() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.body
}

// Record returns the record bytes exactly as received.
func (d *DetailView) Record() json.RawMessage {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.record
}

func indentRecord(v domain.Video) string {
	if len(v.Raw) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, v.Raw, "", "  "); err == nil {
			return buf.String()
		}
		return string(v.Raw)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}
