package catalog

import (
	"context"
	"fmt"

	"github.com/simplefs/catalog-backend/pkg/db/models"
	"github.com/simplefs/catalog-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository executes compiled predicates and the follow-up read passes
// against the catalog store.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

const hasSkuExists = `EXISTS (
SELECT 1 FROM skus s WHERE s.product_id = products.id
)`

const inStockExists = `EXISTS (
SELECT 1 FROM skus s WHERE s.product_id = products.id AND s.count > 0
)`

const attributeExists = `EXISTS (
SELECT 1
FROM skus s
JOIN sku_options so ON so.sku_id = s.id
JOIN option_values sv ON sv.id = so.option_value_id
LEFT JOIN option_values ev ON ev.id = so.range_end_value_id
WHERE s.product_id = products.id
  AND sv.option_id = ?
  AND %s
)`

// FindCandidates returns the ids of products with at least one SKU that
// satisfy every condition, capped at limit. Each condition is wrapped in
// its own EXISTS subquery, so different SKUs of a product may satisfy
// different conditions. Results are ordered by id for determinism; callers
// must not read meaning into that order.
func (r *Repository) FindCandidates(ctx context.Context, pred Predicate, limit int) ([]int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where(hasSkuExists)

	for _, cond := range pred.Conditions {
		clause, args := conditionSQL(cond)
		q = q.Where(clause, args...)
	}
	if pred.InStockOnly {
		q = q.Where(inStockExists)
	}

	var ids []int64
	if err := q.Order("products.id ASC").Limit(limit).Pluck("products.id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// conditionSQL renders one condition as an EXISTS clause over sku_options.
// sv is the row's own value, ev the range end; COALESCE(ev, sv) treats a
// point row as the degenerate interval [v, v].
func conditionSQL(cond Condition) (string, []any) {
	var body string
	args := []any{cond.OptionID}

	switch cond.Kind {
	case CondPoint:
		if cond.Point != nil {
			body = `((so.is_range = ? AND so.option_value_id = ?)
  OR (so.is_range = ? AND sv.numeric_value <= ? AND ev.numeric_value >= ?))`
			args = append(args, false, cond.ValueID, true, *cond.Point, *cond.Point)
		} else {
			body = `(so.is_range = ? AND so.option_value_id = ?)`
			args = append(args, false, cond.ValueID)
		}
	case CondRange:
		if cond.Strict {
			body = `(sv.numeric_value >= ? AND COALESCE(ev.numeric_value, sv.numeric_value) <= ?)`
			args = append(args, cond.From, cond.To)
		} else {
			body = `(sv.numeric_value <= ? AND COALESCE(ev.numeric_value, sv.numeric_value) >= ?)`
			args = append(args, cond.To, cond.From)
		}
	case CondExact:
		body = `(so.is_range = ? AND so.option_value_id = ?)`
		args = append(args, false, cond.ValueID)
	case CondAnyOf:
		body = `(so.is_range = ? AND so.option_value_id IN (?))`
		args = append(args, false, cond.ValueIDs)
	}
	return fmt.Sprintf(attributeExists, body), args
}

// ProductStats are per-product SKU aggregates covering all of a product's
// SKUs, not only the ones a filter matched.
type ProductStats struct {
	ProductID  int64
	SkuCount   int
	TotalStock int
}

// AggregateStats computes SKU counts and stock totals for the candidate set
// in a single grouped query.
func (r *Repository) AggregateStats(ctx context.Context, ids []int64) (map[int64]ProductStats, error) {
	if len(ids) == 0 {
		return map[int64]ProductStats{}, nil
	}
	var rows []ProductStats
	if err := r.db.WithContext(ctx).
		Model(&models.Sku{}).
		Select("product_id AS product_id, COUNT(*) AS sku_count, COALESCE(SUM(count), 0) AS total_stock").
		Where("product_id IN ?", ids).
		Group("product_id").
		Scan(&rows).
		Error; err != nil {
		return nil, err
	}
	stats := make(map[int64]ProductStats, len(rows))
	for _, row := range rows {
		stats[row.ProductID] = row
	}
	return stats, nil
}

// AttributeRow is one SKU attribute assignment joined to its product, the
// raw material of the summary pass.
type AttributeRow struct {
	ProductID       int64
	OptionValueID   int64
	IsRange         bool
	RangeEndValueID *int64
}

// AttributeRows fetches every attribute of every candidate's SKUs in one
// query, ordered by product and assignment id so summaries list options in
// the order they were first attached.
func (r *Repository) AttributeRows(ctx context.Context, ids []int64) (map[int64][]AttributeRow, error) {
	if len(ids) == 0 {
		return map[int64][]AttributeRow{}, nil
	}
	var rows []AttributeRow
	if err := r.db.WithContext(ctx).
		Model(&models.SkuAttribute{}).
		Select("s.product_id AS product_id, sku_options.option_value_id, sku_options.is_range, sku_options.range_end_value_id").
		Joins("JOIN skus s ON s.id = sku_options.sku_id").
		Where("s.product_id IN ?", ids).
		Order("s.product_id ASC, sku_options.id ASC").
		Scan(&rows).
		Error; err != nil {
		return nil, err
	}
	byProduct := make(map[int64][]AttributeRow, len(ids))
	for _, row := range rows {
		byProduct[row.ProductID] = append(byProduct[row.ProductID], row)
	}
	return byProduct, nil
}

// FindProducts loads the candidate products, ordered by id.
func (r *Repository) FindProducts(ctx context.Context, ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&products).
		Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListProducts returns one admin listing page plus the total row count.
func (r *Repository) ListProducts(ctx context.Context, page pagination.Page) ([]models.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&products).
		Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
