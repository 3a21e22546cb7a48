package catalog

import (
	"strconv"
	"strings"

	"github.com/simplefs/catalog-backend/internal/options"
)

const maxSummaryLabels = 3

// optionSpread accumulates everything a product's SKUs carry on one option.
type optionSpread struct {
	option     *options.Option
	hasNumeric bool
	min, max   float64
	step       float64
	labels     map[int64]struct{}
}

// FormatSummary renders a product's full attribute spread as one line,
// independent of whatever filter selected the product. Options appear in
// the order they were first encountered; numeric options collapse to a
// value or a min-max span, enum options list up to three labels.
func FormatSummary(rows []AttributeRow, catalog *options.Catalog) string {
	var order []int64
	spreads := map[int64]*optionSpread{}

	for _, row := range rows {
		start, ok := catalog.ValueByID(row.OptionValueID)
		if !ok {
			continue
		}
		opt, ok := catalog.OptionOfValue(row.OptionValueID)
		if !ok {
			continue
		}
		spread, seen := spreads[opt.ID]
		if !seen {
			spread = &optionSpread{option: opt, labels: map[int64]struct{}{}}
			spreads[opt.ID] = spread
			order = append(order, opt.ID)
		}
		spread.observe(start)
		if row.IsRange && row.RangeEndValueID != nil {
			if end, ok := catalog.ValueByID(*row.RangeEndValueID); ok {
				spread.observe(end)
			}
		}
	}

	fragments := make([]string, 0, len(order))
	for _, id := range order {
		fragments = append(fragments, spreads[id].render())
	}
	return strings.Join(fragments, ", ")
}

func (s *optionSpread) observe(v *options.Value) {
	s.labels[v.ID] = struct{}{}
	if v.Step > s.step {
		s.step = v.Step
	}
	if v.NumericValue == nil {
		return
	}
	n := *v.NumericValue
	if !s.hasNumeric || n < s.min {
		s.min = n
	}
	if !s.hasNumeric || n > s.max {
		s.max = n
	}
	s.hasNumeric = true
}

func (s *optionSpread) render() string {
	if s.hasNumeric {
		return s.option.DisplayName + ": " + s.renderSpan()
	}
	return s.option.DisplayName + ": " + s.renderLabels()
}

func (s *optionSpread) renderSpan() string {
	if s.min == s.max {
		return formatNumber(s.min, s.step)
	}
	return formatNumber(s.min, s.step) + "-" + formatNumber(s.max, s.step)
}

// renderLabels lists the distinct labels in the option's value order, which
// is ascending (numeric_value, label). More than three distinct labels
// truncate to the first three plus an ellipsis.
func (s *optionSpread) renderLabels() string {
	labels := make([]string, 0, len(s.labels))
	truncated := false
	for _, v := range s.option.Values {
		if _, ok := s.labels[v.ID]; !ok {
			continue
		}
		if len(labels) == maxSummaryLabels {
			truncated = true
			break
		}
		labels = append(labels, v.Label)
	}
	out := strings.Join(labels, ", ")
	if truncated {
		out += "..."
	}
	return out
}

// formatNumber renders a numeric position using the option's step as a
// precision hint: step 0.1 keeps one decimal, step 1 keeps none.
func formatNumber(v, step float64) string {
	return strconv.FormatFloat(v, 'f', decimalsForStep(step), 64)
}

func decimalsForStep(step float64) int {
	if step <= 0 {
		return 0
	}
	text := strconv.FormatFloat(step, 'f', -1, 64)
	if i := strings.IndexByte(text, '.'); i >= 0 {
		return len(text) - i - 1
	}
	return 0
}
