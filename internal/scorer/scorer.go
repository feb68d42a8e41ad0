// Package scorer classifies typed text against a passage and derives accuracy and WPM.
package scorer

import (
	"fmt"
	"math"

	"github.com/verte-zerg/typesprint/internal/model"
)

const (
	// TimedSeconds is the countdown length of a timed session.
	TimedSeconds = 60
	// PassageCeilingSeconds ends a passage session that runs this long.
	PassageCeilingSeconds = 300
	// CharsPerWord is the standard word length used for WPM.
	CharsPerWord = 5
)

// Classify re-derives the state of every passage position from the full typed text.
// A position that turns wrong for the first time is recorded in memory and counted once;
// later corrections or repeated mistakes at that position leave the count alone.
// The returned memory is a fresh slice; the input memory is not modified.
func Classify(passage, typed []rune, memory []bool, errorCount int) ([]model.CharState, []bool, int) {
	states := make([]model.CharState, len(passage))
	nextMemory := make([]bool, len(passage))
	copy(nextMemory, memory)

	for i, want := range passage {
		switch {
		case i >= len(typed):
			states[i] = model.Pending
		case typed[i] == want:
			states[i] = model.Correct
		default:
			states[i] = model.Wrong
			if !nextMemory[i] {
				nextMemory[i] = true
				errorCount++
			}
		}
	}
	return states, nextMemory, errorCount
}

// Accuracy returns the share of passage positions never typed wrong, in percent.
// An empty passage is 100% accurate.
func Accuracy(passageLen, errorCount int) float64 {
	if passageLen == 0 {
		return 100
	}
	return 100 * float64(passageLen-errorCount) / float64(passageLen)
}

// ElapsedSeconds converts the session clock into elapsed time for the mode.
func ElapsedSeconds(mode model.Mode, clock int) int {
	if mode == model.ModePassage {
		return clock
	}
	return TimedSeconds - clock
}

// WordsPerMinute counts correct positions as words of five characters per elapsed minute,
// rounded half away from zero. Zero elapsed time yields 0.
func WordsPerMinute(mode model.Mode, clock int, states []model.CharState) int {
	elapsed := ElapsedSeconds(mode, clock)
	if elapsed <= 0 {
		return 0
	}
	correct := CountCorrect(states)
	// correct / 5 / (elapsed / 60), kept in integer terms until the final division.
	wpm := float64(correct*60) / float64(CharsPerWord*elapsed)
	return int(math.Round(wpm))
}

// CountCorrect returns the number of correct positions.
func CountCorrect(states []model.CharState) int {
	return count(states, model.Correct)
}

// CountWrong returns the number of currently wrong positions.
func CountWrong(states []model.CharState) int {
	return count(states, model.Wrong)
}

// CountPending returns the number of untyped positions.
func CountPending(states []model.CharState) int {
	return count(states, model.Pending)
}

func count(states []model.CharState, want model.CharState) int {
	n := 0
	for _, s := range states {
		if s == want {
			n++
		}
	}
	return n
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
