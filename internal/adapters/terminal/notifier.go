package terminal

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Notifier implements ports.Notifier by writing highlighted lines to w.
type Notifier struct {
	w io.Writer
}

// NewNotifier creates a new Notifier.
func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

// Alert writes message as a highlighted line.
func (n *Notifier) Alert(message string) {
	fmt.Fprintln(n.w, text.Colors{text.FgHiRed, text.Bold}.Sprint("! "+message))
}
