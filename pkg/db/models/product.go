package models

// Product is a catalog item sold in one or more SKU variants.
type Product struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name    string `gorm:"column:name;not null"`
	Article string `gorm:"column:article;not null;uniqueIndex"`
	Skus    []Sku  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string { return "products" }
