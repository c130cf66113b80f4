package sqlite

//nolint:revive
import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"hotel/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const (
	DriverName = "sqlite3"

	sqliteMaxIdleConnection = 4
)

// Connection wraps the single handle of the booking store. SQLite serializes
// writers, so there is no read/write split.
type Connection struct {
	DB *sqlx.DB
}

func New(config *config.Config) *Connection {
	db, err := Open(config.DB.SQLite.Path, config.DB.SQLite.BusyTimeoutMs, config.DB.SQLite.MaxOpenConns)
	if err != nil {
		log.Fatal().Err(err).Str("path", config.DB.SQLite.Path).Msg("Failed opening database")
	}

	return &Connection{DB: db}
}

// DSN builds the go-sqlite3 data source name. Transactions start with
// BEGIN IMMEDIATE so the write lock is taken before any read inside them.
func DSN(path string, busyTimeoutMs int) string {
	params := url.Values{}
	params.Set("_busy_timeout", fmt.Sprint(busyTimeoutMs))
	params.Set("_foreign_keys", "on")
	params.Set("_journal_mode", "WAL")
	params.Set("_txlock", "immediate")

	return fmt.Sprintf("file:%s?%s", path, params.Encode())
}

// Open creates the parent directory when needed, opens the file and pings it.
func Open(path string, busyTimeoutMs, maxOpenConns int) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.Connect(DriverName, DSN(path, busyTimeoutMs))
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}

	db.SetMaxIdleConns(sqliteMaxIdleConnection)

	log.Info().Str("path", path).Msg("Connected to database")

	return db, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

func (c *Connection) Close() error {
	if err := c.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
