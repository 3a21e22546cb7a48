package models

// OptionValue is one concrete point on an option's value axis. NumericValue
// is set only for range-kind options; Step is a display hint for the UI and
// for numeric formatting.
type OptionValue struct {
	ID           int64    `gorm:"column:id;primaryKey;autoIncrement"`
	OptionID     int64    `gorm:"column:option_id;not null;index"`
	Value        string   `gorm:"column:value;not null"`
	NumericValue *float64 `gorm:"column:numeric_value"`
	Step         float64  `gorm:"column:step;not null;default:1"`
}

func (OptionValue) TableName() string { return "option_values" }
