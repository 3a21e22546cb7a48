package catalog

import "github.com/simplefs/catalog-backend/pkg/pagination"

// ProductRow is one search result entry.
type ProductRow struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Article        string `json:"article"`
	SkuCount       int    `json:"sku_count"`
	TotalStock     int    `json:"total_stock"`
	OptionsSummary string `json:"options_summary"`
}

// SearchResult is the full response of one filter evaluation. Total is the
// size of the capped candidate set.
type SearchResult struct {
	Products []ProductRow `json:"products"`
	Total    int          `json:"total"`
}

// ItemRow is one entry of the admin product listing.
type ItemRow struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemsPage is one page of the admin product listing.
type ItemsPage struct {
	Data []ItemRow       `json:"data"`
	Meta pagination.Meta `json:"meta"`
}
