package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rahulvarma/bazaarly-backend/pkg/migrate"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations failed validation: %v", err)
	}
}

func TestCartMigrationContainsUniqueKey(t *testing.T) {
	content := readMigration(t, "*_create_cart_lines_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS cart_lines",
		"CREATE UNIQUE INDEX IF NOT EXISTS cart_lines_user_product_key",
		"CHECK (quantity >= 1)",
		"DROP TABLE IF EXISTS cart_lines",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestProductsMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_products_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"REFERENCES merchants (id)",
		"CHECK (price > 0)",
		"CHECK (discount >= 0 AND discount <= 100)",
		"CREATE INDEX IF NOT EXISTS products_final_price_idx",
		"CREATE INDEX IF NOT EXISTS products_category_idx",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
