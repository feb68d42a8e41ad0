package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/typesprint/internal/model"
)

func TestBuildStyledRunesCursor(t *testing.T) {
	passage := []rune("ab")
	states := []model.CharState{model.Correct, model.Pending}

	runes := buildStyledRunes(passage, states, 1, false)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != cursorStyle.Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	runes := buildStyledRunes([]rune("a"), []model.CharState{model.Correct}, -1, false)
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	passage := []rune("abc")
	states := []model.CharState{model.Correct, model.Wrong, model.Pending}

	runes := buildStyledRunes(passage, states, 2, false)
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style showing the passage rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	passage := []rune("one two")
	states := make([]model.CharState, len(passage))
	states[0] = model.Correct

	runes := buildStyledRunes(passage, states, 1, false)
	if runes[0].s != correctStyle.Render("o") {
		t.Fatalf("expected correct style for typed rune")
	}
	if runes[1].s != cursorStyle.Render("n") {
		t.Fatalf("expected cursor style at the cursor")
	}
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	passage := []rune("a b")
	states := []model.CharState{model.Correct, model.Wrong, model.Pending}

	runes := buildStyledRunes(passage, states, 2, false)
	if runes[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected red dot for wrong space")
	}
}

func TestBuildStyledRunesDimmedWhileIdle(t *testing.T) {
	passage := []rune("ab")
	states := []model.CharState{model.Pending, model.Pending}

	runes := buildStyledRunes(passage, states, 0, true)
	for i, r := range runes {
		if r.s != dimStyle.Render(string(passage[i])) {
			t.Fatalf("expected dim style at %d", i)
		}
	}
}

func plainRunes(text string) []styledRune {
	out := make([]styledRune, 0, len(text))
	for _, r := range text {
		out = append(out, styledRune{s: string(r), width: 1, isSpace: r == ' '})
	}
	return out
}

func TestWrapStyledRunesBreaksBetweenWords(t *testing.T) {
	got := wrapStyledRunes(plainRunes("aa bb cc"), 6)
	if got != "aa bb \ncc" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapStyledRunesSplitsLongWords(t *testing.T) {
	got := wrapStyledRunes(plainRunes("abcdefgh"), 3)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 || lines[0] != "abc" || lines[2] != "gh" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapStyledRunesKeepsEveryRune(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	got := wrapStyledRunes(plainRunes(text), 10)
	if strings.ReplaceAll(got, "\n", "") != text {
		t.Fatalf("expected wrapping to only insert newlines, got %q", got)
	}
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 10 {
			t.Fatalf("line wider than 10: %q", line)
		}
	}
}
