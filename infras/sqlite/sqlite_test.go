package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"hotel/infras/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := sqlite.DSN("data/hotel.db", 5000)

	assert.Equal(t, "file:data/hotel.db?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_txlock=immediate", dsn)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hotel.db")

	db, err := sqlite.Open(path, 1000, 2)
	require.NoError(t, err)

	conn := &sqlite.Connection{DB: db}
	defer conn.Close()

	require.NoError(t, conn.Ping(context.Background()))

	var mode string
	require.NoError(t, db.Get(&mode, "PRAGMA journal_mode"))
	assert.Equal(t, "wal", mode)
}

func TestImmediateTransactionsSerializeWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotel.db")

	db, err := sqlite.Open(path, 5000, 4)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("CREATE TABLE counter (n INTEGER NOT NULL)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO counter (n) VALUES (0)")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			tx, err := db.Beginx()
			if !assert.NoError(t, err) {
				return
			}

			var n int
			assert.NoError(t, tx.Get(&n, "SELECT n FROM counter"))
			_, err = tx.Exec("UPDATE counter SET n = ?", n+1)
			assert.NoError(t, err)
			assert.NoError(t, tx.Commit())
		}()
	}

	wg.Wait()

	var n int
	require.NoError(t, db.Get(&n, "SELECT n FROM counter"))
	assert.Equal(t, 8, n)
}
