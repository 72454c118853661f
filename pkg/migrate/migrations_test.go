package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/migrate"
)

func TestMigrationFilenamesValidate(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestOrdersMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_carts_orders.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CHECK (total_amount >= 0)",
		"CHECK (quantity >= 1)",
		"CHECK (amount > 0)",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_carts_active_user",
		"FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS orders",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestInventoryMigrationContainsProcAndViews(t *testing.T) {
	content := readMigration(t, "*_create_inventory_schema.sql")

	checks := []string{
		"CREATE SCHEMA IF NOT EXISTS inventory",
		"CREATE OR REPLACE FUNCTION inventory.adjust_stock",
		"CREATE OR REPLACE VIEW inventory.v_product_stock",
		"CREATE OR REPLACE VIEW inventory.v_low_stock",
		"CREATE OR REPLACE VIEW inventory.v_stock_movements",
		"insufficient stock",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCountersMigrationHasCompositeKey(t *testing.T) {
	content := readMigration(t, "*_create_clients_employees.sql")
	if !strings.Contains(content, "PRIMARY KEY (key, branch)") {
		t.Error("counters table must key on (key, branch)")
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
