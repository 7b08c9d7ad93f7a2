package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/ladder/internal/model"
	"github.com/verte-zerg/ladder/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Attempts   []model.Attempt
	Categories []model.CategoryAggregate
	WeakWords  []model.WordAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	attempts, err := st.ListAttempts(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	categories, err := st.ListCategoryAggregates(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	words, err := st.ListWordAggregates(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Attempts:   attempts,
		Categories: categories,
		WeakWords:  SelectWeakWords(words, cfg.Top),
	}, nil
}

// Render writes every report section to w.
func (r Report) Render(w io.Writer, trendWindow, width int) error {
	if err := RenderSummary(w, r.Attempts, r.Categories); err != nil {
		return err
	}
	if len(r.Attempts) == 0 {
		return nil
	}
	if err := RenderCategoryTable(w, r.Categories); err != nil {
		return err
	}
	if err := RenderWordTable(w, "Hardest Words", r.WeakWords); err != nil {
		return err
	}
	return RenderTrend(w, r.Attempts, trendWindow, width)
}
