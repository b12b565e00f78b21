package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	bookID := UniqueBookID()
	def := SeedBookDefinition(t, pool, bookID, "Tea Party", "", "", "A never-ending six o'clock gathering.")

	var normalized string
	err := pool.QueryRow(
		context.Background(),
		`SELECT term_normalized FROM book_definitions WHERE id = $1`,
		def.ID,
	).Scan(&normalized)
	if err != nil {
		t.Fatalf("expected definition in DB, got error: %v", err)
	}

	if normalized != "tea party" {
		t.Fatalf("expected normalized term %q, got %q", "tea party", normalized)
	}
}
