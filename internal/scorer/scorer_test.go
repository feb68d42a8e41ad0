package scorer

import (
	"math"
	"testing"

	"github.com/verte-zerg/typesprint/internal/model"
)

func TestClassifyPendingCorrectWrong(t *testing.T) {
	passage := []rune("hello world")
	for _, typed := range []string{"", "h", "hex", "hello", "hello wxrld", "jello world"} {
		states, _, _ := Classify(passage, []rune(typed), nil, 0)
		if len(states) != len(passage) {
			t.Fatalf("expected %d states, got %d", len(passage), len(states))
		}
		tr := []rune(typed)
		for i, s := range states {
			var want model.CharState
			switch {
			case i >= len(tr):
				want = model.Pending
			case tr[i] == passage[i]:
				want = model.Correct
			default:
				want = model.Wrong
			}
			if s != want {
				t.Fatalf("typed %q: position %d expected %s, got %s", typed, i, want, s)
			}
		}
	}
}

func TestClassifyCountsMistakeOncePerPosition(t *testing.T) {
	passage := []rune("cat")
	var memory []bool
	errs := 0
	for _, typed := range []string{"c", "cx", "ca", "cx", "cxt"} {
		_, memory, errs = Classify(passage, []rune(typed), memory, errs)
	}
	if errs != 1 {
		t.Fatalf("expected 1 error, got %d", errs)
	}
	if !memory[1] || memory[0] || memory[2] {
		t.Fatalf("unexpected memory: %v", memory)
	}
}

func TestClassifyDoesNotMutateMemory(t *testing.T) {
	passage := []rune("ab")
	memory := []bool{false, false}
	_, next, errs := Classify(passage, []rune("xb"), memory, 0)
	if memory[0] {
		t.Fatalf("input memory was modified")
	}
	if !next[0] || errs != 1 {
		t.Fatalf("expected first position recorded, got %v errs=%d", next, errs)
	}
}

func TestClassifyCorrectionKeepsCount(t *testing.T) {
	passage := []rune("dog")
	_, memory, errs := Classify(passage, []rune("dx"), nil, 0)
	states, memory, errs := Classify(passage, []rune("do"), memory, errs)
	if states[1] != model.Correct {
		t.Fatalf("expected corrected position to be correct, got %s", states[1])
	}
	if errs != 1 || !memory[1] {
		t.Fatalf("expected mistake to stay counted, errs=%d memory=%v", errs, memory)
	}
}

func TestClassifyMultibyteRunes(t *testing.T) {
	passage := []rune("naïve")
	states, _, errs := Classify(passage, []rune("naive"), nil, 0)
	if states[2] != model.Wrong || errs != 1 {
		t.Fatalf("expected wrong at 2, got %s errs=%d", states[2], errs)
	}
	if states[3] != model.Correct {
		t.Fatalf("expected correct at 3, got %s", states[3])
	}
}

func TestAccuracy(t *testing.T) {
	if got := Accuracy(0, 0); got != 100 {
		t.Fatalf("expected 100 for empty passage, got %v", got)
	}
	if got := Accuracy(10, 0); got != 100 {
		t.Fatalf("expected 100 without errors, got %v", got)
	}
	if got := Accuracy(3, 1); math.Abs(got-200.0/3) > 1e-9 {
		t.Fatalf("expected 66.67, got %v", got)
	}
	prev := Accuracy(40, 0)
	for errs := 1; errs <= 40; errs++ {
		got := Accuracy(40, errs)
		if got > prev {
			t.Fatalf("accuracy increased from %v to %v at %d errors", prev, got, errs)
		}
		prev = got
	}
}

func TestWordsPerMinuteElapsedByMode(t *testing.T) {
	states := make([]model.CharState, 50)
	for i := range states {
		states[i] = model.Correct
	}
	// 50 chars = 10 words in 30 seconds.
	if got := WordsPerMinute(model.ModeTimed, 30, states); got != 20 {
		t.Fatalf("timed: expected 20, got %d", got)
	}
	if got := WordsPerMinute(model.ModePassage, 30, states); got != 20 {
		t.Fatalf("passage: expected 20, got %d", got)
	}
	if got := WordsPerMinute(model.ModePassage, 60, states); got != 10 {
		t.Fatalf("passage: expected 10, got %d", got)
	}
}

func TestWordsPerMinuteZeroElapsed(t *testing.T) {
	states := []model.CharState{model.Correct, model.Correct}
	if got := WordsPerMinute(model.ModeTimed, TimedSeconds, states); got != 0 {
		t.Fatalf("expected 0 at start of timed session, got %d", got)
	}
	if got := WordsPerMinute(model.ModePassage, 0, states); got != 0 {
		t.Fatalf("expected 0 at start of passage session, got %d", got)
	}
}

func TestWordsPerMinuteIgnoresWrongAndPending(t *testing.T) {
	states := []model.CharState{model.Correct, model.Wrong, model.Pending, model.Correct, model.Correct, model.Correct, model.Correct}
	// 5 correct chars in 60 seconds.
	if got := WordsPerMinute(model.ModePassage, 60, states); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

// Halves round away from zero: 2.5 -> 3 and 7.5 -> 8, not to even.
func TestWordsPerMinuteRoundsHalfAwayFromZero(t *testing.T) {
	states := make([]model.CharState, 5)
	for i := range states {
		states[i] = model.Correct
	}
	cases := []struct {
		elapsed int
		want    int
	}{
		{elapsed: 24, want: 3},
		{elapsed: 8, want: 8},
		{elapsed: 7, want: 9},
		{elapsed: 9, want: 7},
	}
	for _, tc := range cases {
		if got := WordsPerMinute(model.ModePassage, tc.elapsed, states); got != tc.want {
			t.Fatalf("elapsed %d: expected %d, got %d", tc.elapsed, tc.want, got)
		}
	}
}

func TestCounts(t *testing.T) {
	states := []model.CharState{model.Correct, model.Wrong, model.Pending, model.Correct}
	if CountCorrect(states) != 2 || CountWrong(states) != 1 || CountPending(states) != 1 {
		t.Fatalf("unexpected counts for %v", states)
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[int]string{
		0:   "0:00",
		5:   "0:05",
		59:  "0:59",
		60:  "1:00",
		61:  "1:01",
		300: "5:00",
		-3:  "0:00",
	}
	for in, want := range cases {
		if got := FormatClock(in); got != want {
			t.Fatalf("FormatClock(%d): expected %q, got %q", in, want, got)
		}
	}
}
