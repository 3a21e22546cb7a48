package catalog

import (
	"github.com/simplefs/catalog-backend/internal/options"
)

// ConditionKind discriminates the compiled condition variants.
type ConditionKind int

const (
	// CondPoint matches SKUs sitting on, or spanning, one value of a
	// range option.
	CondPoint ConditionKind = iota
	// CondRange matches SKUs against a numeric window.
	CondRange
	// CondExact matches SKUs carrying one exact value.
	CondExact
	// CondAnyOf matches SKUs carrying any of a set of values.
	CondAnyOf
)

// Condition is one store-executable match condition over SKU attribute
// rows. It is a structured description, not query text; the repository
// translates it. Each condition is evaluated existentially per product:
// some SKU of the product must satisfy it.
type Condition struct {
	Kind     ConditionKind
	OptionID int64

	// CondPoint / CondExact
	ValueID int64
	// Point is the numeric position of the target value, when it has one.
	// Without it a point condition degrades to exact identity matching.
	Point *float64

	// CondRange, normalized so From <= To.
	From   float64
	To     float64
	Strict bool

	// CondAnyOf
	ValueIDs []int64
}

// Predicate is the compiled form of a whole filter.
type Predicate struct {
	Conditions  []Condition
	InStockOnly bool
	// Dropped counts criteria discarded during compilation, e.g. range
	// endpoints that do not resolve on the criterion's option.
	Dropped int
}

// Compile lowers parsed criteria into store conditions. Range endpoints are
// resolved to their numeric values here, never compared by identifier, so
// out-of-order value insertion cannot skew containment. Criteria that fail
// to resolve are dropped, mirroring the parser's permissiveness.
func Compile(f Filter, catalog *options.Catalog) Predicate {
	pred := Predicate{InStockOnly: f.InStockOnly}

	for _, crit := range f.Criteria {
		switch c := crit.(type) {
		case PointCriterion:
			cond := Condition{Kind: CondPoint, OptionID: c.Option.ID, ValueID: c.ValueID}
			if v, ok := catalog.ValueByID(c.ValueID); ok && v.OptionID == c.Option.ID {
				cond.Point = v.NumericValue
			}
			pred.Conditions = append(pred.Conditions, cond)
		case RangeCriterion:
			from, to, ok := resolveWindow(catalog, c)
			if !ok {
				pred.Dropped++
				continue
			}
			pred.Conditions = append(pred.Conditions, Condition{
				Kind:     CondRange,
				OptionID: c.Option.ID,
				From:     from,
				To:       to,
				Strict:   c.Strict,
			})
		case ExactCriterion:
			pred.Conditions = append(pred.Conditions, Condition{
				Kind:     CondExact,
				OptionID: c.Option.ID,
				ValueID:  c.ValueID,
			})
		case AnyOfCriterion:
			pred.Conditions = append(pred.Conditions, Condition{
				Kind:     CondAnyOf,
				OptionID: c.Option.ID,
				ValueIDs: c.ValueIDs,
			})
		}
	}
	return pred
}

// resolveWindow maps both range endpoints to numeric values on the
// criterion's option. Reversed bounds are tolerated and swapped; endpoints
// that are unknown, belong to another option, or carry no numeric value
// make the window unresolvable.
func resolveWindow(catalog *options.Catalog, c RangeCriterion) (float64, float64, bool) {
	from, ok := resolveNumeric(catalog, c.Option.ID, c.FromID)
	if !ok {
		return 0, 0, false
	}
	to, ok := resolveNumeric(catalog, c.Option.ID, c.ToID)
	if !ok {
		return 0, 0, false
	}
	if from > to {
		from, to = to, from
	}
	return from, to, true
}

func resolveNumeric(catalog *options.Catalog, optionID, valueID int64) (float64, bool) {
	v, ok := catalog.ValueByID(valueID)
	if !ok || v.OptionID != optionID || v.NumericValue == nil {
		return 0, false
	}
	return *v.NumericValue, true
}
