package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Totarae/phishcheck/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// JOURNAL_TEST_DSN указывает на тестовую базу PostgreSQL; без неё тесты пропускаются.
func openPostgres(t *testing.T) *PGJournal {
	t.Helper()
	dsn := os.Getenv("JOURNAL_TEST_DSN")
	if dsn == "" {
		t.Skip("JOURNAL_TEST_DSN не задан")
	}
	j, err := OpenPostgres(context.Background(), dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestOpenPostgres_Disabled(t *testing.T) {
	_, err := OpenPostgres(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestOpenPostgres_BadDSN(t *testing.T) {
	_, err := OpenPostgres(context.Background(), "postgres://%zz", nil)
	assert.Error(t, err)
}

func TestPostgres_RecordAndRecent(t *testing.T) {
	j := openPostgres(t)
	ctx := context.Background()

	// Уникальный URL отделяет записи этого прогона от прежних.
	url := "http://example.com/" + uuid.NewString()
	base := time.Now().UTC().Truncate(time.Microsecond)
	for i, s := range []model.State{model.StateSafe, model.StatePhishing} {
		require.NoError(t, j.Record(ctx, model.Entry{
			ID:        uuid.NewString(),
			URL:       url,
			State:     s,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	got, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.StatePhishing, got[0].State)
	assert.Equal(t, url, got[0].URL)
	assert.True(t, base.Add(time.Second).Equal(got[0].CreatedAt))
}

func TestConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		_, err := Connect(ctx, "", "", nil)
		assert.ErrorIs(t, err, ErrDisabled)
	})

	t.Run("sqlite", func(t *testing.T) {
		s, err := Connect(ctx, filepath.Join(t.TempDir(), "journal.db"), "", nil)
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &Journal{}, s)
	})

	t.Run("dsn wins over path", func(t *testing.T) {
		_, err := Connect(ctx, filepath.Join(t.TempDir(), "journal.db"), "postgres://%zz", nil)
		assert.Error(t, err)
	})
}
