package catalog

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/simplefs/catalog-backend/pkg/db/models"
)

// openTestDB opens a per-test in-memory database with the catalog schema.
// The database is named after the test so parallel tests stay isolated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.Option{},
		&models.OptionValue{},
		&models.Product{},
		&models.Sku{},
		&models.SkuAttribute{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return conn
}
