package session

import (
	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/scorer"
)

// Snapshot is a read-only copy of the session state handed to renderers.
type Snapshot struct {
	Phase          Phase
	Mode           model.Mode
	Difficulty     model.Difficulty
	Passage        []rune
	Typed          []rune
	States         []model.CharState
	Cursor         int
	Errors         int
	Accuracy       float64
	WordsPerMinute int
	Clock          string
	HighScore      int
	Baseline       bool
	Summary        *model.Summary
	LoadErr        error
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:          s.phase,
		Mode:           s.mode,
		Difficulty:     s.difficulty,
		Passage:        append([]rune(nil), s.passage...),
		Typed:          append([]rune(nil), s.typed...),
		States:         append([]model.CharState(nil), s.states...),
		Cursor:         s.cursor(),
		Errors:         s.errorCount,
		Accuracy:       s.accuracy,
		WordsPerMinute: s.wpm,
		Clock:          scorer.FormatClock(s.clock),
		HighScore:      s.highScore,
		Baseline:       s.baseline,
		LoadErr:        s.loadErr,
	}
	if s.summary != nil {
		summary := *s.summary
		snap.Summary = &summary
	}
	return snap
}

// cursor is the first pending position, or -1 when none is left.
func (s *Session) cursor() int {
	for i, st := range s.states {
		if st == model.Pending {
			return i
		}
	}
	return -1
}

// Phase returns the lifecycle position.
func (s *Session) Phase() Phase { return s.phase }

// Running reports whether input is accepted.
func (s *Session) Running() bool { return s.phase == Running }

// Ready reports whether a passage is loaded and the session can start.
func (s *Session) Ready() bool { return s.phase == Idle && len(s.passage) > 0 }

// Mode returns the selected mode.
func (s *Session) Mode() model.Mode { return s.mode }

// Difficulty returns the selected difficulty.
func (s *Session) Difficulty() model.Difficulty { return s.difficulty }

// Clock returns the raw clock value in seconds.
func (s *Session) Clock() int { return s.clock }

// Typed returns the current typed text.
func (s *Session) Typed() string { return string(s.typed) }

// Passage returns the loaded passage text.
func (s *Session) Passage() string { return string(s.passage) }

// ErrorCount returns the number of positions ever typed wrong in this session.
func (s *Session) ErrorCount() int { return s.errorCount }

// Accuracy returns the live accuracy in percent.
func (s *Session) Accuracy() float64 { return s.accuracy }

// WordsPerMinute returns the live WPM.
func (s *Session) WordsPerMinute() int { return s.wpm }

// HighScore returns the best WPM known to the session.
func (s *Session) HighScore() int { return s.highScore }

// BaselineEstablished reports whether any high score has been recorded.
func (s *Session) BaselineEstablished() bool { return s.baseline }

// Summary returns the frozen summary of an ended session.
func (s *Session) Summary() (model.Summary, bool) {
	if s.summary == nil {
		return model.Summary{}, false
	}
	return *s.summary, true
}

// LoadErr returns the last passage load failure, if any.
func (s *Session) LoadErr() error { return s.loadErr }
