// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/session"
)

// tickMsg is one second of game time from the timer armed under id.
type tickMsg struct {
	id uint64
}

func tickCmd(id uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

// Model implements the Bubble Tea typing UI. It drives a session and renders
// the snapshots the session pushes to it.
type Model struct {
	sess         *session.Session
	snap         session.Snapshot
	difficulties []model.Difficulty
	input        textinput.Model
	keys         keyMap
	help         help.Model
	log          *slog.Logger

	width  int
	height int
}

// NewModel creates the session with the model as its sink. A passage load failure
// is not fatal: the model shows it and retries on reset.
func NewModel(ctx context.Context, opts session.Options, difficulties []model.Difficulty) (*Model, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	m := &Model{
		difficulties: difficulties,
		input:        newInput(),
		keys:         defaultKeyMap(),
		help:         help.New(),
		log:          opts.Logger,
	}
	opts.Sink = m
	sess, err := session.New(ctx, opts)
	if sess == nil {
		return nil, err
	}
	m.sess = sess
	m.syncInputLimit()
	if len(m.difficulties) == 0 {
		m.difficulties = model.Difficulties
	}
	return m, nil
}

func newInput() textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	km := &in.KeyMap
	for _, b := range []*key.Binding{
		&km.CharacterForward,
		&km.CharacterBackward,
		&km.WordForward,
		&km.WordBackward,
		&km.LineStart,
		&km.LineEnd,
		&km.DeleteCharacterForward,
		&km.DeleteAfterCursor,
		&km.DeleteWordForward,
		&km.AcceptSuggestion,
		&km.NextSuggestion,
		&km.PrevSuggestion,
	} {
		b.SetEnabled(false)
	}
	return in
}

// Render implements session.Sink.
func (m *Model) Render(snap session.Snapshot) {
	m.snap = snap
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		if m.sess.Tick(msg.id) && m.sess.TimerArmed() {
			return m, tickCmd(msg.id)
		}
		if !m.sess.Running() {
			m.input.Blur()
		}
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Reset):
		m.reset()
		return nil
	case key.Matches(msg, m.keys.Mode):
		m.cycleMode()
		return nil
	case key.Matches(msg, m.keys.Difficulty):
		m.cycleDifficulty()
		return nil
	case key.Matches(msg, m.keys.Blocked):
		return nil
	}

	switch m.sess.Phase() {
	case session.Idle:
		if key.Matches(msg, m.keys.Start) {
			return m.start()
		}
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			cmd := m.start()
			if cmd == nil {
				return nil
			}
			return tea.Batch(cmd, m.typeKey(msg))
		}
	case session.Running:
		return m.typeKey(msg)
	case session.Ended:
		if key.Matches(msg, m.keys.Start) {
			m.reset()
		}
	}
	return nil
}

func (m *Model) start() tea.Cmd {
	if err := m.sess.Start(); err != nil {
		if !errors.Is(err, session.ErrNoPassage) {
			m.log.Debug("start ignored", "err", err)
		}
		return nil
	}
	m.input.Focus()
	return tickCmd(m.sess.TimerID())
}

func (m *Model) typeKey(msg tea.KeyMsg) tea.Cmd {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.sess.OnInput(value)
	}
	if !m.sess.Running() {
		m.input.Blur()
	}
	return cmd
}

func (m *Model) reset() {
	m.input.Reset()
	m.input.Blur()
	// Load failures are carried in the snapshot.
	_ = m.sess.Reset(context.Background())
	m.syncInputLimit()
}

func (m *Model) cycleMode() {
	next := model.Modes[0]
	for i, mode := range model.Modes {
		if mode == m.sess.Mode() {
			next = model.Modes[(i+1)%len(model.Modes)]
			break
		}
	}
	m.input.Reset()
	m.input.Blur()
	_ = m.sess.SetMode(context.Background(), next)
	m.syncInputLimit()
}

func (m *Model) cycleDifficulty() {
	next := m.difficulties[0]
	for i, d := range m.difficulties {
		if d == m.sess.Difficulty() {
			next = m.difficulties[(i+1)%len(m.difficulties)]
			break
		}
	}
	m.input.Reset()
	m.input.Blur()
	_ = m.sess.SetDifficulty(context.Background(), next)
	m.syncInputLimit()
}

func (m *Model) syncInputLimit() {
	m.input.CharLimit = len([]rune(m.sess.Passage()))
}
