package migrations_test

import (
	"context"
	"testing"

	"github.com/joaoppegoraro/garage-management/internal/testutil"
	"github.com/joaoppegoraro/garage-management/migrations"
)

func TestApply(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `DROP TABLE IF EXISTS parking_records, parking_spaces, garage_sectors, schema_migrations CASCADE`)
	if err != nil {
		t.Fatalf("drop tables: %v", err)
	}

	if err := migrations.Apply(ctx, pool); err != nil {
		t.Fatalf("first apply: %v", err)
	}

	for _, table := range []string{"garage_sectors", "parking_spaces", "parking_records"} {
		var exists bool
		err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`, table).Scan(&exists)
		if err != nil {
			t.Fatalf("check table %s: %v", table, err)
		}
		if !exists {
			t.Fatalf("expected table %s to exist", table)
		}
	}

	// Re-running must be a no-op.
	if err := migrations.Apply(ctx, pool); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	var applied int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatalf("count applied migrations: %v", err)
	}
	if applied == 0 {
		t.Fatal("expected applied migrations to be recorded")
	}
}
