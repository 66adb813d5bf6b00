package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scrapedesk/internal/adapters/terminal"
	"scrapedesk/internal/core/domain"
	"scrapedesk/internal/presenter"
	"scrapedesk/internal/service"
)

func init() {
	rootCmd.AddCommand(shellCmd)
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Starts an interactive session (the default).",
	RunE:  runShell,
}

const shellHelp = `commands:
  user <name>        set the username
  password [value]   set the password (prompts without echo when omitted)
  load               load the category list
  select <n>         select category n
  pages <n>          set the page count (1-5, empty for 1)
  submit             run a scrape job for the selected category
  list               show the current results again
  categories         show the category list again
  show <i>           show the full record of video i
  open <i>           print the original page of video i
  close | esc        close the detail view
  log                print the activity log
  help               print this help
  quit               leave the session
`

// aliases maps shell words onto the session's dispatch table.
var aliases = map[string]string{
	"user":   service.CmdSetUsername,
	"load":   service.CmdLoadCategories,
	"select": service.CmdSelect,
	"pages":  service.CmdSetPages,
	"submit": service.CmdSubmit,
	"scrape": service.CmdSubmit,
	"show":   service.CmdShowDetail,
	"close":  service.CmdCloseDetail,
	"esc":    service.CmdEscape,
}

// secretReader asks for a value without echo.
type secretReader interface {
	AskSecret(query string) (string, error)
}

// console is the line-oriented front end of a session.
type console struct {
	session *service.Session
	in      io.Reader
	out     io.Writer
	secrets secretReader
}

func runShell(cmd *cobra.Command, args []string) error {
	session, cfg, err := newSession(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "scrapedesk connected to %s, type help for commands\n", cfg.BaseURL)

	c := &console{
		session: session,
		in:      cmd.InOrStdin(),
		out:     cmd.OutOrStdout(),
		secrets: terminal.NewPrompter(),
	}
	return c.run(cmd.Context())
}

// run reads lines until quit, end of input or cancellation of ctx. The reader
// goroutine only scans when asked to, so a password prompt can use the
// terminal between two lines.
func (c *console) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	next := make(chan struct{})
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		var err error
		defer func() {
			scanErr <- err
			close(lines)
		}()
		scanner := bufio.NewScanner(c.in)
		for {
			select {
			case <-next:
			case <-ctx.Done():
				return
			}
			if !scanner.Scan() {
				err = scanner.Err()
				return
			}
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(c.out, "scrapedesk> ")
		select {
		case next <- struct{}{}:
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return nil
		}

		select {
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(c.out)
				return <-scanErr
			}
			if quit := c.exec(ctx, line); quit {
				return nil
			}
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return nil
		}
	}
}

// exec runs one input line and reports whether the session should end.
func (c *console) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	word, args := strings.ToLower(fields[0]), fields[1:]

	switch word {
	case "quit", "exit":
		return true
	case "help", "?":
		fmt.Fprint(c.out, shellHelp)
		return false
	case "password", "pass":
		c.setPassword(ctx, args)
		return false
	case "list", "categories", "log", "open":
		c.session.Presenter().Dismiss(presenter.TriggerOutside)
		c.view(word, args)
		return false
	}

	name, ok := aliases[word]
	if !ok {
		name = word
	}
	if err := c.session.Dispatch(ctx, name, args...); err != nil && !reported(err) {
		fmt.Fprintf(c.out, "error: %v\n", err)
	}
	return false
}

func (c *console) setPassword(ctx context.Context, args []string) {
	if len(args) == 0 && c.secrets != nil {
		secret, err := c.secrets.AskSecret("password:")
		if err != nil {
			slog.Warn("failed to read password", "err", err)
			fmt.Fprintf(c.out, "error: %v\n", err)
			return
		}
		args = []string{secret}
	}
	if err := c.session.Dispatch(ctx, service.CmdSetPassword, args...); err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
	}
}

func (c *console) view(word string, args []string) {
	state := c.session.State()
	switch word {
	case "list":
		if panel, ok := presenter.RenderTopicPanel(state.TopicMeta()); ok {
			fmt.Fprintln(c.out, panel)
		}
		fmt.Fprint(c.out, presenter.RenderVideoList(state.Videos()))
	case "categories":
		fmt.Fprint(c.out, presenter.RenderCategories(state.Categories(), state.Selected()))
	case "log":
		fmt.Fprint(c.out, c.session.Activity().String())
	case "open":
		if len(args) != 1 {
			fmt.Fprintln(c.out, "error: open needs a video number")
			return
		}
		index, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(c.out, "error: invalid video number %q\n", args[0])
			return
		}
		if v, ok := state.Video(index); ok && v.DetailURL != "" {
			fmt.Fprintln(c.out, v.DetailURL)
		}
	}
}

// reported reports whether err was already shown to the operator.
func reported(err error) bool {
	var rejected *domain.RequestRejected
	var failure *domain.TransportFailure
	return domain.IsValidation(err) || errors.As(err, &rejected) || errors.As(err, &failure)
}
