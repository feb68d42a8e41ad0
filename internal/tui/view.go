package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/session"
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Underline(true)
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Background(lipgloss.Color("#3A3A3A"))
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	liveClockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FACC15"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	hintStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle        = lipgloss.NewStyle().
				Padding(1, 3).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	cardLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

type outcomeCopy struct {
	title   string
	message string
	cta     string
}

var outcomeTexts = map[model.Outcome]outcomeCopy{
	model.OutcomeOrdinary: {
		title:   "Test Complete!",
		message: "Solid run. Keep pushing to beat your high score.",
		cta:     "Restart",
	},
	model.OutcomeBaselineEstablished: {
		title:   "Baseline Established!",
		message: "You've set the bar. Now beat it.",
		cta:     "Beat This Score",
	},
	model.OutcomeHighScoreBroken: {
		title:   "High Score Smashed!",
		message: "You're getting faster. That was incredible typing.",
		cta:     "Beat This Score",
	},
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.renderHeader()
	var body string
	switch {
	case m.snap.LoadErr != nil:
		body = m.renderLoadError()
	case m.snap.Phase == session.Ended && m.snap.Summary != nil:
		body = renderResult(*m.snap.Summary)
	default:
		body = m.renderPassage()
	}
	footer := m.help.View(m.keys)

	if m.width == 0 || m.height == 0 {
		return strings.Join([]string{header, body, footer}, "\n\n")
	}
	if m.height < 5 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	headerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, header)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	main := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, body)
	return headerLine + "\n" + main + "\n" + footerLine
}

func (m *Model) renderHeader() string {
	clock := m.snap.Clock
	if m.snap.Phase == session.Running {
		clock = liveClockStyle.Render(clock)
	}
	best := "-"
	if m.snap.Baseline {
		best = fmt.Sprintf("%d WPM", m.snap.HighScore)
	}
	segments := []string{
		fmt.Sprintf("Mode %s", m.snap.Mode),
		fmt.Sprintf("Difficulty %s", m.snap.Difficulty),
		fmt.Sprintf("Time %s", clock),
		fmt.Sprintf("WPM %d", m.snap.WordsPerMinute),
		fmt.Sprintf("Accuracy %.2f%%", m.snap.Accuracy),
		fmt.Sprintf("Best %s", best),
	}
	return headerStyle.Render(strings.Join(segments, "  ·  "))
}

func (m *Model) renderPassage() string {
	if len(m.snap.Passage) == 0 {
		return hintStyle.Render("Loading passage...")
	}
	idle := m.snap.Phase == session.Idle
	styled := buildStyledRunes(m.snap.Passage, m.snap.States, m.snap.Cursor, idle)
	var text string
	if m.width > 0 {
		contentWidth := int(float64(m.width) * 0.70)
		if contentWidth < 1 {
			contentWidth = 1
		}
		text = lipgloss.NewStyle().Width(contentWidth).Render(wrapStyledRunes(styled, contentWidth))
	} else {
		text = renderStyledRunes(styled)
	}
	if idle {
		return text + "\n\n" + hintStyle.Render("Press enter or start typing to begin")
	}
	return text
}

func (m *Model) renderLoadError() string {
	return errorStyle.Render(fmt.Sprintf("Could not load a passage: %v", m.snap.LoadErr)) +
		"\n\n" + hintStyle.Render("Press esc to retry")
}

func renderResult(s model.Summary) string {
	texts, ok := outcomeTexts[s.Outcome]
	if !ok {
		texts = outcomeTexts[model.OutcomeOrdinary]
	}
	accStyle := correctStyle
	if s.Accuracy < 100 {
		accStyle = errorStyle
	}
	lines := []string{
		cardTitleStyle.Render(texts.title),
		texts.message,
		"",
		fmt.Sprintf("%s %d", cardLabelStyle.Render("WPM:"), s.WordsPerMinute),
		fmt.Sprintf("%s %s", cardLabelStyle.Render("Accuracy:"), accStyle.Render(fmt.Sprintf("%.2f%%", s.Accuracy))),
		fmt.Sprintf("%s %s", cardLabelStyle.Render("Characters:"),
			correctStyle.Render(fmt.Sprintf("%d", s.Correct))+"/"+errorStyle.Render(fmt.Sprintf("%d", s.Wrong))),
		"",
		hintStyle.Render("enter: " + texts.cta),
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}
