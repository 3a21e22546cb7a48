package models

// Option is a named facet (size, color, ...) products can be filtered by.
// Whether an option is numeric-range or enumerated is derived from its
// values, not stored.
type Option struct {
	ID          int64         `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string        `gorm:"column:name;not null;uniqueIndex"`
	DisplayName string        `gorm:"column:display_name;not null"`
	Values      []OptionValue `gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE"`
}

func (Option) TableName() string { return "options" }
