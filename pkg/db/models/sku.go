package models

// Sku is one stocked variant of a product.
type Sku struct {
	ID         int64          `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID  int64          `gorm:"column:product_id;not null;index"`
	Count      int            `gorm:"column:count;not null;default:0"`
	Barcode    string         `gorm:"column:barcode;not null;uniqueIndex"`
	Attributes []SkuAttribute `gorm:"foreignKey:SkuID;constraint:OnDelete:CASCADE"`
}

func (Sku) TableName() string { return "skus" }
