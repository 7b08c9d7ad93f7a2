// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/ladder/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Accuracy returns the share of correct answers, or 0 with no answers.
func Accuracy(correct, incorrect int) float64 {
	den := float64(correct + incorrect)
	if den <= 0 {
		return 0
	}
	return float64(correct) / den
}

// LongestStreak returns the longest run of consecutive correct attempts.
func LongestStreak(attempts []model.Attempt) int {
	best, cur := 0, 0
	for _, a := range attempts {
		if !a.Correct {
			cur = 0
			continue
		}
		cur++
		if cur > best {
			best = cur
		}
	}
	return best
}

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

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
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

// MostPracticed returns the category with the most attempts. Ties go to the
// alphabetically first name.
func MostPracticed(aggs []model.CategoryAggregate) (string, bool) {
	best, bestTotal := "", 0
	for _, agg := range aggs {
		total := agg.Correct + agg.Incorrect
		if total == 0 {
			continue
		}
		if total > bestTotal || (total == bestTotal && agg.Category < best) {
			best, bestTotal = agg.Category, total
		}
	}
	return best, bestTotal > 0
}

// RenderSummary prints totals over the attempts.
func RenderSummary(w io.Writer, attempts []model.Attempt, categories []model.CategoryAggregate) error {
	if len(attempts) == 0 {
		_, err := fmt.Fprintln(w, "No attempts found.")
		return err
	}
	correct := 0
	for _, a := range attempts {
		if a.Correct {
			correct++
		}
	}
	incorrect := len(attempts) - correct
	lines := []string{
		"Summary",
		fmt.Sprintf("Attempts: %d", len(attempts)),
		fmt.Sprintf("Correct: %d", correct),
		fmt.Sprintf("Incorrect: %d", incorrect),
		fmt.Sprintf("Accuracy: %.2f%%", Accuracy(correct, incorrect)*100),
		fmt.Sprintf("Longest streak: %d", LongestStreak(attempts)),
	}
	if name, ok := MostPracticed(categories); ok {
		lines = append(lines, fmt.Sprintf("Most practiced: %s", name))
	}
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCategoryTable prints per-category aggregates, weakest first.
func RenderCategoryTable(w io.Writer, aggs []model.CategoryAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No category stats found.")
		return err
	}
	rows := make([]model.CategoryAggregate, len(aggs))
	copy(rows, aggs)
	sort.Slice(rows, func(i, j int) bool {
		ai := Accuracy(rows[i].Correct, rows[i].Incorrect)
		aj := Accuracy(rows[j].Correct, rows[j].Incorrect)
		if ai == aj {
			return rows[i].Category < rows[j].Category
		}
		return ai < aj
	})

	if _, err := fmt.Fprintln(w, "Per-Category"); err != nil {
		return err
	}
	headers := []string{"Category", "Accuracy", "Correct", "Incorrect", "Last"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.Category,
			fmt.Sprintf("%.2f%%", Accuracy(r.Correct, r.Incorrect)*100),
			fmt.Sprintf("%d", r.Correct),
			fmt.Sprintf("%d", r.Incorrect),
			r.LastAt.Local().Format("2006-01-02"),
		})
	}
	return writeTable(w, headers, tableRows, map[int]bool{1: true, 2: true, 3: true})
}

// RenderWordTable prints the given word aggregates in order.
func RenderWordTable(w io.Writer, title string, aggs []model.WordAggregate) error {
	if len(aggs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	headers := []string{"Word", "Category", "Accuracy", "Correct", "Incorrect"}
	tableRows := make([][]string, 0, len(aggs))
	for _, a := range aggs {
		tableRows = append(tableRows, []string{
			a.Question,
			a.Category,
			fmt.Sprintf("%.2f%%", Accuracy(a.Correct, a.Incorrect)*100),
			fmt.Sprintf("%d", a.Correct),
			fmt.Sprintf("%d", a.Incorrect),
		})
	}
	return writeTable(w, headers, tableRows, map[int]bool{2: true, 3: true, 4: true})
}

// RenderProgress prints remaining/completed counts per category.
func RenderProgress(w io.Writer, cats []model.CategoryProgress) error {
	if len(cats) == 0 {
		_, err := fmt.Fprintln(w, "No categories found.")
		return err
	}
	headers := []string{"Category", "Remaining", "Completed"}
	tableRows := make([][]string, 0, len(cats))
	for _, c := range cats {
		tableRows = append(tableRows, []string{
			c.Name,
			fmt.Sprintf("%d", c.Remaining),
			fmt.Sprintf("%d", c.Completed),
		})
	}
	return writeTable(w, headers, tableRows, map[int]bool{1: true, 2: true})
}

// RenderTrend prints a rolling accuracy sparkline no wider than width.
func RenderTrend(w io.Writer, attempts []model.Attempt, window, width int) error {
	if len(attempts) < 2 {
		return nil
	}
	values := make([]float64, len(attempts))
	for i, a := range attempts {
		if a.Correct {
			values[i] = 100
		}
	}
	values = MovingAverage(values, window)
	const label = "Accuracy trend "
	avail := width - len(label)
	if avail < minTrendWidth {
		avail = minTrendWidth
	}
	if len(values) > avail {
		values = values[len(values)-avail:]
	}
	_, err := fmt.Fprintf(w, "%s%s\n", label, Sparkline(values))
	return err
}

func writeTable(w io.Writer, headers []string, rows [][]string, rightAlign map[int]bool) error {
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
