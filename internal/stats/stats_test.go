package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/typesprint/internal/model"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestResample(t *testing.T) {
	got := Resample([]float64{1, 3, 5, 7}, 2)
	if len(got) != 2 || got[0] != 2 || got[1] != 6 {
		t.Fatalf("unexpected resample: %v", got)
	}
	if got := Resample([]float64{1, 2}, 10); len(got) != 2 {
		t.Fatalf("expected short series unchanged, got %v", got)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{5, 5, 5}); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil, 0, false); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No sessions found." {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRenderSummaryCountsRecords(t *testing.T) {
	results := []model.Result{
		{Summary: model.Summary{WordsPerMinute: 40, Accuracy: 90, Outcome: model.OutcomeBaselineEstablished}},
		{Summary: model.Summary{WordsPerMinute: 30, Accuracy: 100, Outcome: model.OutcomeOrdinary}},
		{Summary: model.Summary{WordsPerMinute: 50, Accuracy: 95, Outcome: model.OutcomeHighScoreBroken}},
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, results, 50, true); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 3", "Avg WPM: 40.00", "Best WPM: 50", "Avg Accuracy: 95.00%", "New records: 2", "High score: 50 WPM"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestSparklineWidthFor(t *testing.T) {
	if got := SparklineWidthFor(80); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
	if got := SparklineWidthFor(0); got != minSparklineWidth {
		t.Fatalf("expected min width, got %d", got)
	}
}
