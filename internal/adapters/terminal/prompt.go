package terminal

import (
	"strings"

	input "github.com/tcnksm/go-input"
)

// Prompter asks the operator for input on the controlling terminal.
type Prompter struct {
	ui *input.UI
}

// NewPrompter creates a Prompter bound to stdin and stdout.
func NewPrompter() *Prompter {
	return &Prompter{ui: input.DefaultUI()}
}

// Ask reads a visible value.
func (p *Prompter) Ask(query string) (string, error) {
	answer, err := p.ui.Ask(query, &input.Options{
		Required:  true,
		Loop:      true,
		HideOrder: true,
	})
	return strings.TrimSpace(answer), err
}

// AskSecret reads a value without echoing it.
func (p *Prompter) AskSecret(query string) (string, error) {
	answer, err := p.ui.Ask(query, &input.Options{
		Required:  true,
		Loop:      true,
		HideOrder: true,
		Mask:      true,
	})
	return strings.TrimSpace(answer), err
}
