package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"scrapedesk/internal/activity"
	"scrapedesk/internal/core/domain"
	"scrapedesk/internal/core/ports"
	"scrapedesk/internal/presenter"
)

// Command names understood by Session.Dispatch.
const (
	CmdSetUsername    = "setUsername"
	CmdSetPassword    = "setPassword"
	CmdSetPages       = "setPages"
	CmdLoadCategories = "loadCategories"
	CmdSelect         = "select"
	CmdSubmit         = "submit"
	CmdShowDetail     = "showDetail"
	CmdCloseDetail    = "closeDetail"
	CmdEscape         = "escape"
)

// Command is one entry of the dispatch table.
type Command func(ctx context.Context, args []string) error

// ErrUnknownCommand is returned by Dispatch for names outside the table.
var ErrUnknownCommand = errors.New("unknown command")

// Session wires the workflow components around one ClientState and exposes
// them to a UI as named commands.
type Session struct {
	Fields Fields

	state        *ClientState
	catalog      *Catalog
	orchestrator *Orchestrator
	presenter    *presenter.Presenter
	activity     *activity.Log
	notify       ports.Notifier
	out          io.Writer
	commands     map[string]Command
}

// SessionOptions holds the collaborators of a Session.
type SessionOptions struct {
	Backend  ports.Backend
	Storage  ports.Storage
	Notifier ports.Notifier
	Out      io.Writer
	Logger   *slog.Logger
}

// NewSession creates a session with fresh state.
func NewSession(opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	state := NewClientState()
	events := activity.New(logger)
	pres := presenter.New(out, state)

	s := &Session{
		state:        state,
		catalog:      NewCatalog(opts.Backend, state, events, opts.Notifier, logger),
		orchestrator: NewOrchestrator(opts.Backend, state, pres, opts.Storage, events, opts.Notifier, logger),
		presenter:    pres,
		activity:     events,
		notify:       opts.Notifier,
		out:          out,
	}
	s.commands = map[string]Command{
		CmdSetUsername:    s.setField(&s.Fields.Username),
		CmdSetPassword:    s.setField(&s.Fields.Password),
		CmdSetPages:       s.setField(&s.Fields.Pages),
		CmdLoadCategories: func(ctx context.Context, _ []string) error { return s.LoadCategories(ctx) },
		CmdSelect:         s.selectCommand,
		CmdSubmit:         func(ctx context.Context, _ []string) error { return s.Submit(ctx) },
		CmdShowDetail:     s.showDetailCommand,
		CmdCloseDetail: func(context.Context, []string) error {
			s.presenter.CloseDetail()
			return nil
		},
		CmdEscape: func(context.Context, []string) error {
			s.presenter.Dismiss(presenter.TriggerEscape)
			return nil
		},
	}
	return s
}

// Commands lists the names of the dispatch table.
func (s *Session) Commands() []string {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the named command. Any command other than the detail view's
// own controls counts as an action outside the open detail view and
// dismisses it first.
func (s *Session) Dispatch(ctx context.Context, name string, args ...string) error {
	cmd, ok := s.commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	switch name {
	case CmdShowDetail, CmdCloseDetail, CmdEscape:
	default:
		s.presenter.Dismiss(presenter.TriggerOutside)
	}
	return cmd(ctx, args)
}

// LoadCategories checks the credential fields and reloads the catalog.
func (s *Session) LoadCategories(ctx context.Context) error {
	cred, err := CollectCredential(s.Fields)
	if err != nil {
		s.warn(err)
		return err
	}
	categories, err := s.catalog.Load(ctx, cred)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, presenter.RenderCategories(categories, s.state.Selected()))
	return nil
}

// Submit validates credentials, selection and page count, in that order,
// then runs the job. Nothing is sent when a check fails.
func (s *Session) Submit(ctx context.Context) error {
	cred, err := CollectCredential(s.Fields)
	if err != nil {
		s.warn(err)
		return err
	}
	category, err := s.catalog.ResolveSelection()
	if err != nil {
		s.warn(err)
		return err
	}
	pages, err := ParsePages(s.Fields.Pages)
	if err != nil {
		s.warn(err)
		return err
	}
	_, err = s.orchestrator.Submit(ctx, cred, category, pages)
	return err
}

// SubmitCategory selects the category matching identifier and submits it.
func (s *Session) SubmitCategory(ctx context.Context, identifier string) (*domain.JobResult, error) {
	cred, err := CollectCredential(s.Fields)
	if err != nil {
		s.warn(err)
		return nil, err
	}
	category, err := s.catalog.SelectByIdentifier(identifier)
	if err != nil {
		s.warn(err)
		return nil, err
	}
	pages, err := ParsePages(s.Fields.Pages)
	if err != nil {
		s.warn(err)
		return nil, err
	}
	return s.orchestrator.Submit(ctx, cred, category, pages)
}

// ShowDetail opens the detail view; out-of-range indices are ignored.
func (s *Session) ShowDetail(index int) bool {
	return s.presenter.ShowDetail(index)
}

// State exposes the session state.
func (s *Session) State() *ClientState { return s.state }

// Activity exposes the session's activity log.
func (s *Session) Activity() *activity.Log { return s.activity }

// Presenter exposes the session's presenter.
func (s *Session) Presenter() *presenter.Presenter { return s.presenter }

func (s *Session) warn(err error) {
	var v *domain.ValidationError
	if errors.As(err, &v) {
		s.notify.Alert(v.Message)
		return
	}
	s.notify.Alert(err.Error())
}

func (s *Session) setField(field *string) Command {
	return func(_ context.Context, args []string) error {
		*field = strings.Join(args, " ")
		return nil
	}
}

func (s *Session) selectCommand(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("select needs a category number")
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid category number %q", args[0])
	}
	if err := s.state.Select(index); err != nil {
		s.warn(err)
		return err
	}
	fmt.Fprint(s.out, presenter.RenderCategories(s.state.Categories(), index))
	return nil
}

func (s *Session) showDetailCommand(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("show needs a video number")
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid video number %q", args[0])
	}
	s.presenter.ShowDetail(index)
	return nil
}
