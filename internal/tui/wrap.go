package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typesprint/internal/model"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

func buildStyledRunes(passage []rune, states []model.CharState, cursorIndex int, dimmed bool) []styledRune {
	words := findWords(passage)
	currentWord := wordForCursor(words, cursorIndex)

	out := make([]styledRune, 0, len(passage))
	for i, target := range passage {
		displayed := target
		state := model.Pending
		if i < len(states) {
			state = states[i]
		}
		style := pendingStyle
		switch {
		case dimmed:
			style = dimStyle
		case state == model.Correct:
			style = correctStyle
		case state == model.Wrong:
			style = incorrectStyle
			if target == ' ' {
				displayed = '•'
			}
		case target != ' ' && currentWord != nil && i >= currentWord.start && i < currentWord.end:
			style = currentWordStyle
		}
		if i == cursorIndex && !dimmed {
			style = cursorStyle
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: target == ' ',
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func findWords(passage []rune) []wordRange {
	words := []wordRange{}
	start := -1
	for i, r := range passage {
		if r == ' ' {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(passage)})
	}
	return words
}

func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	if len(words) == 0 {
		return nil
	}
	if cursorIndex < 0 {
		return &words[0]
	}
	wordIdx := -1
	for i, w := range words {
		if cursorIndex >= w.start && cursorIndex < w.end {
			wordIdx = i
			break
		}
		if cursorIndex < w.start {
			wordIdx = i
			break
		}
	}
	if wordIdx == -1 {
		return &words[len(words)-1]
	}
	return &words[wordIdx]
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks the passage into lines of at most width cells. Words
// keep their trailing space so the cursor and wrong-space marks stay visible;
// a word wider than the line is split.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var lines []string
	var line []styledRune
	lineWidth := 0
	flush := func() {
		lines = append(lines, renderStyledRunes(line))
		line = nil
		lineWidth = 0
	}
	for _, word := range splitWords(runes) {
		wordWidth := widthOf(word)
		if lineWidth > 0 && lineWidth+wordWidth > width {
			flush()
		}
		for _, item := range word {
			if lineWidth > 0 && lineWidth+item.width > width {
				flush()
			}
			line = append(line, item)
			lineWidth += item.width
		}
	}
	if len(line) > 0 {
		flush()
	}
	return strings.Join(lines, "\n")
}

// splitWords groups runes into words, each followed by its trailing spaces.
func splitWords(runes []styledRune) [][]styledRune {
	var words [][]styledRune
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i == len(runes) || (runes[i-1].isSpace && !runes[i].isSpace) {
			words = append(words, runes[start:i])
			start = i
		}
	}
	return words
}

func widthOf(runes []styledRune) int {
	total := 0
	for _, item := range runes {
		total += item.width
	}
	return total
}
