package lookuplog_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/alice-reader-backend/internal/adapter/postgres/lookuplog"
	"github.com/heartmarshall/alice-reader-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

func TestRepo_Integration_RetentionCleanup(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := lookuplog.New(pool)
	ctx := context.Background()

	userID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)
	section := "chapter-7"

	records := []domain.LookupRecord{
		{ID: uuid.New(), UserID: userID, BookID: testhelper.UniqueBookID(), Term: "treacle", CreatedAt: now.AddDate(0, 0, -200)},
		{ID: uuid.New(), UserID: userID, BookID: testhelper.UniqueBookID(), SectionID: &section, Term: "dormouse", DefinitionFound: true, CreatedAt: now},
	}
	for _, rec := range records {
		require.NoError(t, repo.Create(ctx, rec))
	}

	deleted, err := repo.DeleteOlderThan(ctx, now.AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(1))

	var terms []string
	rows, err := pool.Query(ctx, `SELECT term FROM dictionary_lookups WHERE user_id = $1`, userID)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var term string
		require.NoError(t, rows.Scan(&term))
		terms = append(terms, term)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"dormouse"}, terms)
}

func TestRepo_Integration_DuplicateID(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := lookuplog.New(pool)
	ctx := context.Background()

	rec := domain.LookupRecord{ID: uuid.New(), UserID: uuid.New(), BookID: "wonderland", Term: "Alice", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, rec))
	assert.ErrorIs(t, repo.Create(ctx, rec), domain.ErrAlreadyExists)
}
