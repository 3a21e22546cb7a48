package options

import (
	"sort"

	"github.com/simplefs/catalog-backend/pkg/db/models"
)

// Kind classifies how an option's values are interpreted.
type Kind string

const (
	// KindEnum marks options whose values are unordered labels.
	KindEnum Kind = "enum"
	// KindRange marks options whose values carry numeric positions.
	KindRange Kind = "range"
)

// Value is one selectable value of an option.
type Value struct {
	ID           int64    `json:"id"`
	OptionID     int64    `json:"option_id"`
	Label        string   `json:"label"`
	NumericValue *float64 `json:"numeric_value,omitempty"`
	Step         float64  `json:"step,omitempty"`
}

// Option is a filterable attribute together with its values.
type Option struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Kind        Kind    `json:"kind"`
	Values      []Value `json:"values"`
}

// Catalog is an immutable snapshot of all options, indexed for filter
// compilation. Build it with NewCatalog; the lookup maps are not serialized.
type Catalog struct {
	Options []Option `json:"options"`

	byName        map[string]*Option
	valueByID     map[int64]*Value
	optionOfValue map[int64]*Option
}

// NewCatalog converts loaded rows into an indexed catalog. An option is a
// range option when at least one of its values carries a numeric value;
// otherwise it is an enum option. Values are ordered by numeric value first,
// label second, so range endpoints and summary output are deterministic.
func NewCatalog(rows []models.Option) *Catalog {
	c := &Catalog{Options: make([]Option, 0, len(rows))}
	for _, row := range rows {
		opt := Option{
			ID:          row.ID,
			Name:        row.Name,
			DisplayName: row.DisplayName,
			Kind:        KindEnum,
			Values:      make([]Value, 0, len(row.Values)),
		}
		for _, v := range row.Values {
			if v.NumericValue != nil {
				opt.Kind = KindRange
			}
			opt.Values = append(opt.Values, Value{
				ID:           v.ID,
				OptionID:     v.OptionID,
				Label:        v.Value,
				NumericValue: v.NumericValue,
				Step:         v.Step,
			})
		}
		sortValues(opt.Values)
		c.Options = append(c.Options, opt)
	}
	c.reindex()
	return c
}

// Reindex rebuilds the lookup maps, e.g. after deserializing a cached
// snapshot where only the Options slice survives.
func (c *Catalog) Reindex() { c.reindex() }

func (c *Catalog) reindex() {
	c.byName = make(map[string]*Option, len(c.Options))
	c.valueByID = make(map[int64]*Value)
	c.optionOfValue = make(map[int64]*Option)
	for i := range c.Options {
		opt := &c.Options[i]
		c.byName[opt.Name] = opt
		for j := range opt.Values {
			v := &opt.Values[j]
			c.valueByID[v.ID] = v
			c.optionOfValue[v.ID] = opt
		}
	}
}

// OptionByName resolves an option by its filter key.
func (c *Catalog) OptionByName(name string) (*Option, bool) {
	opt, ok := c.byName[name]
	return opt, ok
}

// ValueByID resolves a value by its identifier across all options.
func (c *Catalog) ValueByID(id int64) (*Value, bool) {
	v, ok := c.valueByID[id]
	return v, ok
}

// OptionOfValue resolves the option a value belongs to.
func (c *Catalog) OptionOfValue(valueID int64) (*Option, bool) {
	opt, ok := c.optionOfValue[valueID]
	return opt, ok
}

func sortValues(values []Value) {
	sort.SliceStable(values, func(i, j int) bool {
		a, b := values[i], values[j]
		switch {
		case a.NumericValue != nil && b.NumericValue != nil:
			if *a.NumericValue != *b.NumericValue {
				return *a.NumericValue < *b.NumericValue
			}
		case a.NumericValue != nil:
			return true
		case b.NumericValue != nil:
			return false
		}
		return a.Label < b.Label
	})
}
