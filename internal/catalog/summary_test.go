package catalog

import (
	"testing"

	"github.com/simplefs/catalog-backend/internal/options"
	"github.com/simplefs/catalog-backend/pkg/db/models"
)

func f64(v float64) *float64 { return &v }

func summaryCatalog() *options.Catalog {
	return options.NewCatalog([]models.Option{
		{
			ID:          1,
			Name:        "weight",
			DisplayName: "Weight (kg)",
			Values: []models.OptionValue{
				{ID: 11, OptionID: 1, Value: "1.0", NumericValue: f64(1), Step: 0.1},
				{ID: 12, OptionID: 1, Value: "2.0", NumericValue: f64(2), Step: 0.1},
				{ID: 13, OptionID: 1, Value: "3.0", NumericValue: f64(3), Step: 0.1},
			},
		},
		{
			ID:          2,
			Name:        "color",
			DisplayName: "Color",
			Values: []models.OptionValue{
				{ID: 21, OptionID: 2, Value: "Red"},
				{ID: 22, OptionID: 2, Value: "Blue"},
				{ID: 23, OptionID: 2, Value: "Green"},
				{ID: 24, OptionID: 2, Value: "Black"},
			},
		},
	})
}

func point(valueID int64) AttributeRow {
	return AttributeRow{ProductID: 1, OptionValueID: valueID}
}

func span(startID, endID int64) AttributeRow {
	return AttributeRow{ProductID: 1, OptionValueID: startID, IsRange: true, RangeEndValueID: &endID}
}

func TestFormatSummaryNumericCollapse(t *testing.T) {
	c := summaryCatalog()

	if got := FormatSummary([]AttributeRow{point(11)}, c); got != "Weight (kg): 1.0" {
		t.Fatalf("single point = %q", got)
	}
	if got := FormatSummary([]AttributeRow{point(11), point(13)}, c); got != "Weight (kg): 1.0-3.0" {
		t.Fatalf("two points = %q", got)
	}
	if got := FormatSummary([]AttributeRow{span(11, 13)}, c); got != "Weight (kg): 1.0-3.0" {
		t.Fatalf("interval = %q", got)
	}
}

func TestFormatSummaryEnumTruncation(t *testing.T) {
	c := summaryCatalog()

	// 3 distinct labels render in full, in (numeric_value, label) order.
	three := []AttributeRow{point(21), point(22), point(23)}
	if got := FormatSummary(three, c); got != "Color: Blue, Green, Red" {
		t.Fatalf("three labels = %q", got)
	}

	four := []AttributeRow{point(21), point(22), point(23), point(24)}
	if got := FormatSummary(four, c); got != "Color: Black, Blue, Green..." {
		t.Fatalf("four labels = %q", got)
	}
}

func TestFormatSummaryFragmentsInFirstEncounterOrder(t *testing.T) {
	c := summaryCatalog()

	rows := []AttributeRow{point(21), span(11, 12)}
	want := "Color: Red, Weight (kg): 1.0-2.0"
	if got := FormatSummary(rows, c); got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
}

func TestFormatSummaryIgnoresDanglingIDs(t *testing.T) {
	c := summaryCatalog()

	rows := []AttributeRow{point(999), point(21)}
	if got := FormatSummary(rows, c); got != "Color: Red" {
		t.Fatalf("summary = %q", got)
	}
	if got := FormatSummary(nil, c); got != "" {
		t.Fatalf("empty summary = %q", got)
	}
}

func TestFormatSummaryStepPrecision(t *testing.T) {
	c := options.NewCatalog([]models.Option{{
		ID:          1,
		Name:        "size",
		DisplayName: "Size",
		Values: []models.OptionValue{
			{ID: 11, OptionID: 1, Value: "2", NumericValue: f64(2), Step: 1},
			{ID: 12, OptionID: 1, Value: "5", NumericValue: f64(5), Step: 1},
		},
	}})

	if got := FormatSummary([]AttributeRow{span(11, 12)}, c); got != "Size: 2-5" {
		t.Fatalf("integer step summary = %q", got)
	}
}
