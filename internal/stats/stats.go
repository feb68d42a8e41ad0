// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/scorer"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Resample averages values into at most width buckets.
func Resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for b := 0; b < width; b++ {
		start := b * len(values) / width
		end := (b + 1) * len(values) / width
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[b] = sum / float64(end-start)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := minMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func minMax(values []float64) (float64, float64) {
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// RenderSummary prints a summary of completed sessions.
func RenderSummary(w io.Writer, results []model.Result, highScore int, hasHighScore bool) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalWPM, totalAcc float64
	bestWPM := 0
	records := 0
	for _, r := range results {
		totalWPM += float64(r.WordsPerMinute)
		totalAcc += r.Accuracy
		if r.WordsPerMinute > bestWPM {
			bestWPM = r.WordsPerMinute
		}
		if r.Outcome == model.OutcomeBaselineEstablished || r.Outcome == model.OutcomeHighScoreBroken {
			records++
		}
	}
	count := float64(len(results))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(results)),
		fmt.Sprintf("Avg WPM: %.2f", totalWPM/count),
		fmt.Sprintf("Best WPM: %d", bestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", totalAcc/count),
		fmt.Sprintf("New records: %d", records),
	}
	if hasHighScore {
		lines = append(lines, fmt.Sprintf("High score: %d WPM", highScore))
	}
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints WPM and accuracy sparklines smoothed over window sessions.
func RenderCurves(w io.Writer, results []model.Result, window, width int) error {
	if len(results) == 0 {
		return nil
	}
	wpms := make([]float64, len(results))
	accs := make([]float64, len(results))
	for i, r := range results {
		wpms[i] = float64(r.WordsPerMinute)
		accs[i] = r.Accuracy
	}
	series := []struct {
		name   string
		values []float64
		unit   string
	}{
		{name: "WPM", values: MovingAverage(wpms, window), unit: ""},
		{name: "Accuracy", values: MovingAverage(accs, window), unit: "%"},
	}
	if _, err := fmt.Fprintln(w, "Learning Curves"); err != nil {
		return err
	}
	for _, s := range series {
		values := Resample(s.values, width)
		lo, hi := minMax(values)
		if _, err := fmt.Fprintf(w, "%-8s |%s| %.1f%s..%.1f%s\n", s.name, Sparkline(values), lo, s.unit, hi, s.unit); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderHistory prints the most recent sessions as a table, newest last.
func RenderHistory(w io.Writer, results []model.Result, limit int) error {
	if len(results) == 0 {
		return nil
	}
	if limit > 0 && len(results) > limit {
		results = results[len(results)-limit:]
	}
	cols := []column{
		{header: "Ended"},
		{header: "Mode"},
		{header: "Difficulty"},
		{header: "WPM", right: true},
		{header: "Accuracy", right: true},
		{header: "Correct", right: true},
		{header: "Wrong", right: true},
		{header: "Time", right: true},
		{header: "Outcome"},
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			string(r.Mode),
			string(r.Difficulty),
			fmt.Sprintf("%d", r.WordsPerMinute),
			fmt.Sprintf("%.2f%%", r.Accuracy),
			fmt.Sprintf("%d", r.Correct),
			fmt.Sprintf("%d", r.Wrong),
			scorer.FormatClock(r.ElapsedSeconds),
			outcomeLabel(r.Outcome),
		})
	}
	if _, err := fmt.Fprintln(w, "Recent Sessions"); err != nil {
		return err
	}
	return writeTable(w, cols, rows)
}

func outcomeLabel(o model.Outcome) string {
	switch o {
	case model.OutcomeBaselineEstablished:
		return "baseline"
	case model.OutcomeHighScoreBroken:
		return "record"
	default:
		return "-"
	}
}
