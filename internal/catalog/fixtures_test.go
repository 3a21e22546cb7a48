package catalog

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/simplefs/catalog-backend/internal/options"
	"github.com/simplefs/catalog-backend/pkg/db/models"
)

// fixture is the seeded catalog shared by most tests: a numeric size
// option with values 1..10, an enum color option and an enum material
// option with enough values to trigger summary truncation.
type fixture struct {
	db      *gorm.DB
	catalog *options.Catalog

	size     *options.Option
	sizeIDs  map[int]int64 // numeric position -> value id
	colorIDs map[string]int64
	matIDs   map[string]int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := openTestDB(t)
	f := &fixture{
		db:       db,
		sizeIDs:  map[int]int64{},
		colorIDs: map[string]int64{},
		matIDs:   map[string]int64{},
	}

	size := &models.Option{Name: "size", DisplayName: "Size"}
	mustCreate(t, db, size)
	for i := 1; i <= 10; i++ {
		n := float64(i)
		v := &models.OptionValue{OptionID: size.ID, Value: fmt.Sprintf("%d", i), NumericValue: &n, Step: 1}
		mustCreate(t, db, v)
		f.sizeIDs[i] = v.ID
	}

	color := &models.Option{Name: "color", DisplayName: "Color"}
	mustCreate(t, db, color)
	for _, label := range []string{"Red", "Blue", "Green"} {
		v := &models.OptionValue{OptionID: color.ID, Value: label, Step: 1}
		mustCreate(t, db, v)
		f.colorIDs[label] = v.ID
	}

	material := &models.Option{Name: "material", DisplayName: "Material"}
	mustCreate(t, db, material)
	for _, label := range []string{"Cotton", "Linen", "Silk", "Wool"} {
		v := &models.OptionValue{OptionID: material.ID, Value: label, Step: 1}
		mustCreate(t, db, v)
		f.matIDs[label] = v.ID
	}

	rows, err := options.NewRepository(db).ListWithValues(context.Background())
	if err != nil {
		t.Fatalf("loading options: %v", err)
	}
	f.catalog = options.NewCatalog(rows)
	f.size, _ = f.catalog.OptionByName("size")
	return f
}

func mustCreate(t *testing.T, db *gorm.DB, value any) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func (f *fixture) addProduct(t *testing.T, name, article string) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Article: article}
	mustCreate(t, f.db, p)
	return p
}

func (f *fixture) addSku(t *testing.T, productID int64, count int, barcode string) *models.Sku {
	t.Helper()
	s := &models.Sku{ProductID: productID, Count: count, Barcode: barcode}
	mustCreate(t, f.db, s)
	return s
}

func (f *fixture) addPoint(t *testing.T, skuID, valueID int64) {
	t.Helper()
	mustCreate(t, f.db, &models.SkuAttribute{SkuID: skuID, OptionValueID: valueID})
}

func (f *fixture) addRange(t *testing.T, skuID, startID, endID int64) {
	t.Helper()
	mustCreate(t, f.db, &models.SkuAttribute{
		SkuID:         skuID,
		OptionValueID: startID,
		IsRange:       true,
		RangeEndValueID: func() *int64 {
			id := endID
			return &id
		}(),
	})
}

// seedScenario creates product P with two SKUs: one spanning sizes 2..5 in
// Red, one at size 7 in Blue.
func (f *fixture) seedScenario(t *testing.T) *models.Product {
	t.Helper()
	p := f.addProduct(t, "P", "P-001")
	sku1 := f.addSku(t, p.ID, 4, "P-001-1")
	f.addRange(t, sku1.ID, f.sizeIDs[2], f.sizeIDs[5])
	f.addPoint(t, sku1.ID, f.colorIDs["Red"])
	sku2 := f.addSku(t, p.ID, 0, "P-001-2")
	f.addPoint(t, sku2.ID, f.sizeIDs[7])
	f.addPoint(t, sku2.ID, f.colorIDs["Blue"])
	return p
}
