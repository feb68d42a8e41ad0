// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects how the session clock runs.
type Mode string

const (
	// ModeTimed counts down from a fixed duration.
	ModeTimed Mode = "timed"
	// ModePassage counts up until the passage is finished or the ceiling is hit.
	ModePassage Mode = "passage"
)

// Modes lists the selectable modes in display order.
var Modes = []Mode{ModeTimed, ModePassage}

// ParseMode converts a user supplied mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeTimed:
		return ModeTimed, nil
	case ModePassage:
		return ModePassage, nil
	default:
		return "", fmt.Errorf("unknown mode %q (available: timed, passage)", s)
	}
}

// Difficulty names a pool of passages.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the built-in difficulties in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// CharState classifies a single passage position.
type CharState uint8

const (
	Pending CharState = iota
	Correct
	Wrong
)

func (s CharState) String() string {
	switch s {
	case Correct:
		return "correct"
	case Wrong:
		return "wrong"
	default:
		return "pending"
	}
}

// Outcome classifies a finished session against the stored high score.
type Outcome string

const (
	OutcomeNone                Outcome = ""
	OutcomeOrdinary            Outcome = "ordinary-completion"
	OutcomeBaselineEstablished Outcome = "baseline-established"
	OutcomeHighScoreBroken     Outcome = "high-score-broken"
)

// Passage is the text the user transcribes for one session.
type Passage struct {
	Text string `json:"text" yaml:"text" validate:"required"`
}

// Runes returns the passage as a rune slice.
func (p Passage) Runes() []rune {
	return []rune(p.Text)
}

// Config defines game settings.
type Config struct {
	Mode       Mode
	Difficulty Difficulty
	Passages   string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Mode        Mode
	Difficulty  Difficulty
	Since       *time.Time
	Last        int
	CurveWindow int
}

// Summary is the frozen outcome of an ended session.
type Summary struct {
	Mode           Mode
	Difficulty     Difficulty
	WordsPerMinute int
	Accuracy       float64
	Correct        int
	Wrong          int
	ElapsedSeconds int
	Outcome        Outcome
}

// Result captures a completed session for the history log.
type Result struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	Summary
}
