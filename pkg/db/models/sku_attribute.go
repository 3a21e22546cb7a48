package models

// SkuAttribute assigns a SKU to a position on one option: a single point
// value, or a closed interval when IsRange is set. Both interval endpoints
// belong to the same option in well-formed data.
type SkuAttribute struct {
	ID              int64  `gorm:"column:id;primaryKey;autoIncrement"`
	SkuID           int64  `gorm:"column:sku_id;not null;index"`
	OptionValueID   int64  `gorm:"column:option_value_id;not null;index"`
	IsRange         bool   `gorm:"column:is_range;not null;default:false"`
	RangeEndValueID *int64 `gorm:"column:range_end_value_id"`
}

func (SkuAttribute) TableName() string { return "sku_options" }
