// Package session runs a single typing game: it owns the game state, drives the
// idle -> running -> ended lifecycle and delegates scoring to the scorer package.
//
// A Session is not safe for concurrent use. It is meant to be driven from one
// event loop that delivers input changes and timer ticks in order.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/scorer"
)

var (
	// ErrNoPassage is returned when starting without a loaded passage.
	ErrNoPassage = errors.New("no passage loaded")
	// ErrEnded is returned when starting an ended session that was not reset.
	ErrEnded = errors.New("session ended; reset required")
	// ErrEmptyPassage is returned when the passage source yields empty text.
	ErrEmptyPassage = errors.New("passage is empty")
)

// PassageSource supplies passage text for a difficulty.
type PassageSource interface {
	Passage(ctx context.Context, difficulty model.Difficulty) (model.Passage, error)
}

// HighScoreStore persists the best WPM across sessions.
type HighScoreStore interface {
	HighScore(ctx context.Context) (int, bool, error)
	SetHighScore(ctx context.Context, score int) error
}

// ResultRecorder stores completed sessions.
type ResultRecorder interface {
	RecordResult(ctx context.Context, result model.Result) error
}

// Sink receives a snapshot after every state change.
type Sink interface {
	Render(Snapshot)
}

// Phase is the lifecycle position of a session.
type Phase int

const (
	Idle Phase = iota
	Running
	Ended
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Ended:
		return "ended"
	default:
		return "idle"
	}
}

type clockSpec struct {
	direction int
	start     int
}

var modeClocks = map[model.Mode]clockSpec{
	model.ModeTimed:   {direction: -1, start: scorer.TimedSeconds},
	model.ModePassage: {direction: 1, start: 0},
}

// Options configures a Session.
type Options struct {
	Source     PassageSource
	HighScores HighScoreStore
	Results    ResultRecorder
	Sink       Sink
	Logger     *slog.Logger
	Mode       model.Mode
	Difficulty model.Difficulty
	Now        func() time.Time
}

// Session holds the state of the current game.
type Session struct {
	source     PassageSource
	highScores HighScoreStore
	results    ResultRecorder
	sink       Sink
	log        *slog.Logger
	now        func() time.Time

	mode       model.Mode
	difficulty model.Difficulty

	phase      Phase
	passage    []rune
	typed      []rune
	states     []model.CharState
	memory     []bool
	errorCount int
	accuracy   float64
	wpm        int
	clock      int
	direction  int

	timerID    uint64
	timerArmed bool

	startedAt time.Time
	summary   *model.Summary
	loadErr   error

	highScore int
	baseline  bool
}

// New creates an idle session, reads the stored high score and loads the first passage.
// A passage load failure is returned together with the session so callers can
// present it and retry with Reset.
func New(ctx context.Context, opts Options) (*Session, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("passage source is required")
	}
	if opts.HighScores == nil {
		return nil, fmt.Errorf("high score store is required")
	}
	if opts.Mode == "" {
		opts.Mode = model.ModeTimed
	}
	if _, ok := modeClocks[opts.Mode]; !ok {
		return nil, fmt.Errorf("unknown mode %q", opts.Mode)
	}
	if opts.Difficulty == "" {
		opts.Difficulty = model.DifficultyHard
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Session{
		source:     opts.Source,
		highScores: opts.HighScores,
		results:    opts.Results,
		sink:       opts.Sink,
		log:        opts.Logger,
		now:        opts.Now,
		mode:       opts.Mode,
		difficulty: opts.Difficulty,
		accuracy:   100,
	}

	score, ok, err := s.highScores.HighScore(ctx)
	if err != nil {
		s.log.Warn("failed to read high score", "err", err)
	} else if ok {
		s.highScore = score
		s.baseline = true
	}

	if err := s.Reset(ctx); err != nil {
		return s, err
	}
	return s, nil
}

// Start begins the game clock. It is a no-op while running.
func (s *Session) Start() error {
	switch s.phase {
	case Running:
		return nil
	case Ended:
		return ErrEnded
	}
	if len(s.passage) == 0 {
		return ErrNoPassage
	}
	clk := modeClocks[s.mode]
	s.phase = Running
	s.errorCount = 0
	s.wpm = 0
	s.direction = clk.direction
	s.clock = clk.start
	s.startedAt = s.now()
	s.armTimer()
	s.log.Debug("session started", "mode", s.mode, "difficulty", s.difficulty, "length", len(s.passage))
	s.notify()
	return nil
}

// OnTick advances the clock by one second and ends the session when the mode's
// limit is reached.
func (s *Session) OnTick() {
	if s.phase != Running {
		return
	}
	s.clock += s.direction
	if (s.direction > 0 && s.clock >= scorer.PassageCeilingSeconds) || (s.direction < 0 && s.clock <= 0) {
		s.End()
		return
	}
	s.notify()
}

// Tick delivers a tick produced by the timer identified by id. Ticks from a timer
// that has since been stopped or replaced are dropped. It reports whether the tick
// was applied.
func (s *Session) Tick(id uint64) bool {
	if !s.timerArmed || id != s.timerID {
		return false
	}
	s.OnTick()
	return true
}

// TimerID identifies the currently armed timer.
func (s *Session) TimerID() uint64 {
	return s.timerID
}

// TimerArmed reports whether ticks are expected.
func (s *Session) TimerArmed() bool {
	return s.timerArmed
}

// OnInput replaces the typed text and rescores the passage. Input outside a
// running session is ignored.
func (s *Session) OnInput(typed string) {
	if s.phase != Running {
		return
	}
	runes := []rune(typed)
	if len(runes) > len(s.passage) {
		runes = runes[:len(s.passage)]
	}
	s.typed = runes
	s.states, s.memory, s.errorCount = scorer.Classify(s.passage, s.typed, s.memory, s.errorCount)
	s.accuracy = scorer.Accuracy(len(s.passage), s.errorCount)
	s.wpm = scorer.WordsPerMinute(s.mode, s.clock, s.states)

	if len(s.typed) == len(s.passage) {
		s.End()
		return
	}
	s.notify()
}

// End stops the session, freezes its metrics and compares WPM with the high score.
// It is a no-op unless the session is running.
func (s *Session) End() {
	if s.phase != Running {
		return
	}
	s.phase = Ended
	s.stopTimer()
	endedAt := s.now()

	summary := model.Summary{
		Mode:           s.mode,
		Difficulty:     s.difficulty,
		WordsPerMinute: s.wpm,
		Accuracy:       s.accuracy,
		Correct:        scorer.CountCorrect(s.states),
		Wrong:          s.errorCount,
		ElapsedSeconds: scorer.ElapsedSeconds(s.mode, s.clock),
		Outcome:        s.updateHighScore(),
	}
	s.summary = &summary
	s.log.Info("session ended",
		"mode", summary.Mode,
		"difficulty", summary.Difficulty,
		"wpm", summary.WordsPerMinute,
		"accuracy", summary.Accuracy,
		"outcome", summary.Outcome,
	)

	if s.results != nil {
		result := model.Result{
			StartedAt: s.startedAt,
			EndedAt:   endedAt,
			Summary:   summary,
		}
		if err := s.results.RecordResult(context.Background(), result); err != nil {
			s.log.Warn("failed to record result", "err", err)
		}
	}
	s.notify()
}

func (s *Session) updateHighScore() model.Outcome {
	if s.wpm <= s.highScore {
		return model.OutcomeOrdinary
	}
	s.highScore = s.wpm
	if err := s.highScores.SetHighScore(context.Background(), s.highScore); err != nil {
		s.log.Warn("failed to save high score", "err", err)
	}
	if !s.baseline {
		s.baseline = true
		return model.OutcomeBaselineEstablished
	}
	return model.OutcomeHighScoreBroken
}

// Reset stops any running clock, loads a new passage and returns to idle.
// On load failure the session stays idle without a passage and cannot start.
func (s *Session) Reset(ctx context.Context) error {
	s.stopTimer()
	clk := modeClocks[s.mode]
	s.phase = Idle
	s.typed = nil
	s.errorCount = 0
	s.accuracy = 100
	s.wpm = 0
	s.direction = clk.direction
	s.clock = clk.start
	s.startedAt = time.Time{}
	s.summary = nil
	s.loadErr = nil

	p, err := s.source.Passage(ctx, s.difficulty)
	if err == nil && p.Text == "" {
		err = ErrEmptyPassage
	}
	if err != nil {
		s.passage = nil
		s.states = nil
		s.memory = nil
		s.loadErr = fmt.Errorf("failed to load %s passage: %w", s.difficulty, err)
		s.log.Error("failed to load passage", "difficulty", s.difficulty, "err", err)
		s.notify()
		return s.loadErr
	}

	s.passage = p.Runes()
	s.states = make([]model.CharState, len(s.passage))
	s.memory = make([]bool, len(s.passage))
	s.notify()
	return nil
}

// SetMode switches the mode and resets the session.
func (s *Session) SetMode(ctx context.Context, mode model.Mode) error {
	if _, ok := modeClocks[mode]; !ok {
		return fmt.Errorf("unknown mode %q", mode)
	}
	s.mode = mode
	return s.Reset(ctx)
}

// SetDifficulty switches the passage pool and resets the session.
func (s *Session) SetDifficulty(ctx context.Context, difficulty model.Difficulty) error {
	if difficulty == "" {
		return fmt.Errorf("difficulty must not be empty")
	}
	s.difficulty = difficulty
	return s.Reset(ctx)
}

func (s *Session) armTimer() {
	s.timerID++
	s.timerArmed = true
}

func (s *Session) stopTimer() {
	if !s.timerArmed {
		return
	}
	s.timerID++
	s.timerArmed = false
}

func (s *Session) notify() {
	if s.sink == nil {
		return
	}
	s.sink.Render(s.Snapshot())
}
