package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/store"
)

const historyRows = 10

// Report contains precomputed data for stats rendering.
type Report struct {
	Results      []model.Result
	HighScore    int
	HasHighScore bool
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	results, err := st.ListResults(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	score, ok, err := st.HighScore(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Results:      results,
		HighScore:    score,
		HasHighScore: ok,
	}, nil
}

// Render writes the full report.
func (r Report) Render(w io.Writer, curveWindow, width int) error {
	if err := RenderSummary(w, r.Results, r.HighScore, r.HasHighScore); err != nil {
		return err
	}
	if err := RenderCurves(w, r.Results, curveWindow, SparklineWidthFor(width)); err != nil {
		return err
	}
	return RenderHistory(w, r.Results, historyRows)
}
