package catalog

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/simplefs/catalog-backend/internal/options"
)

const inStockKey = "in_stock"

const (
	modeSuffix   = "_mode"
	singleSuffix = "_single"
	fromSuffix   = "_from"
	toSuffix     = "_to"
	strictSuffix = "_strict"
	multiSuffix  = "[]"
)

// Criterion is one parsed filter condition. The concrete types below are
// the only implementations.
type Criterion interface {
	criterion()
}

// PointCriterion selects SKUs sitting on (or spanning) a single value of a
// range option.
type PointCriterion struct {
	Option  *options.Option
	ValueID int64
}

// RangeCriterion selects SKUs within a numeric window on a range option.
// Strict requires full containment; otherwise overlap suffices.
type RangeCriterion struct {
	Option *options.Option
	FromID int64
	ToID   int64
	Strict bool
}

// ExactCriterion selects SKUs carrying one exact enum value.
type ExactCriterion struct {
	Option  *options.Option
	ValueID int64
}

// AnyOfCriterion selects SKUs carrying any of the listed enum values.
type AnyOfCriterion struct {
	Option   *options.Option
	ValueIDs []int64
}

func (PointCriterion) criterion() {}
func (RangeCriterion) criterion() {}
func (ExactCriterion) criterion() {}
func (AnyOfCriterion) criterion() {}

// Filter is the parsed form of one search request.
type Filter struct {
	Criteria    []Criterion
	InStockOnly bool
	// Dropped counts criteria discarded as malformed or naming unknown
	// options. They never fail the request.
	Dropped int
}

// ParseFilter turns raw query parameters into typed criteria. Malformed
// combinations are dropped silently and unknown keys are ignored; parsing
// never fails. Keys are processed in sorted order so the criteria sequence
// is deterministic regardless of map iteration order.
func ParseFilter(params url.Values, catalog *options.Catalog) Filter {
	var f Filter

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch {
		case key == inStockKey:
			if truthy(params.Get(key)) {
				f.InStockOnly = true
			}
		case strings.HasSuffix(key, multiSuffix):
			name := strings.TrimSuffix(key, multiSuffix)
			opt, ok := catalog.OptionByName(name)
			if !ok {
				continue
			}
			ids := coerceIDs(params[key], opt)
			if len(ids) == 0 {
				continue
			}
			f.Criteria = append(f.Criteria, AnyOfCriterion{Option: opt, ValueIDs: ids})
		case strings.HasSuffix(key, modeSuffix):
			name := strings.TrimSuffix(key, modeSuffix)
			opt, ok := catalog.OptionByName(name)
			if !ok {
				f.Dropped++
				continue
			}
			f.parseMode(params, name, opt)
		case hasReservedSuffix(key):
			// Companion keys are consumed alongside their _mode key.
		default:
			opt, ok := catalog.OptionByName(key)
			if !ok {
				continue
			}
			raw := params.Get(key)
			if raw == "" {
				continue
			}
			f.Criteria = append(f.Criteria, ExactCriterion{Option: opt, ValueID: coerceID(raw, opt)})
		}
	}
	return f
}

func (f *Filter) parseMode(params url.Values, name string, opt *options.Option) {
	switch params.Get(name + modeSuffix) {
	case "single":
		raw := params.Get(name + singleSuffix)
		if raw == "" {
			f.Dropped++
			return
		}
		f.Criteria = append(f.Criteria, PointCriterion{Option: opt, ValueID: coerceID(raw, opt)})
	case "range":
		from := params.Get(name + fromSuffix)
		to := params.Get(name + toSuffix)
		if from == "" || to == "" {
			f.Dropped++
			return
		}
		f.Criteria = append(f.Criteria, RangeCriterion{
			Option: opt,
			FromID: coerceID(from, opt),
			ToID:   coerceID(to, opt),
			Strict: params.Has(name + strictSuffix),
		})
	default:
		f.Dropped++
	}
}

func hasReservedSuffix(key string) bool {
	for _, suffix := range []string{singleSuffix, fromSuffix, toSuffix, strictSuffix} {
		if strings.HasSuffix(key, suffix) {
			return true
		}
	}
	return false
}

// coerceID turns a raw parameter into a value id. Non-numeric input falls
// back to a label lookup within the option; anything else coerces to the
// zero sentinel, which matches no row.
func coerceID(raw string, opt *options.Option) int64 {
	if id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
		return id
	}
	for _, v := range opt.Values {
		if v.Label == strings.TrimSpace(raw) {
			return v.ID
		}
	}
	return 0
}

func coerceIDs(raws []string, opt *options.Option) []int64 {
	ids := make([]int64, 0, len(raws))
	for _, raw := range raws {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		ids = append(ids, coerceID(raw, opt))
	}
	return ids
}

// truthy mirrors the lenient form handling of the availability flag: any
// non-empty value other than "0" turns it on.
func truthy(value string) bool {
	return value != "" && value != "0"
}
