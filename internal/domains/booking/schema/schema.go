package schema

//go:generate go run go.uber.org/mock/mockgen -source=./schema.go -destination=../mocks/schema_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel/infras/otel"
	"hotel/infras/sqlite"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	backupPrefix = model.TableName + "_legacy_"

	indexName         = "idx_bookings_room_dates"
	insertTriggerName = "bookings_no_overlap_insert"
	updateTriggerName = "bookings_no_overlap_update"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS bookings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	guest_name TEXT NOT NULL,
	guest_phone TEXT NOT NULL,
	room_number TEXT NOT NULL,
	check_in_date DATE NOT NULL,
	check_out_date DATE NOT NULL,
	members INTEGER NOT NULL DEFAULT 1
)`

const createIndexSQL = `CREATE INDEX IF NOT EXISTS ` + indexName + ` ON bookings (room_number, check_in_date, check_out_date)`

const createInsertTriggerSQL = `CREATE TRIGGER IF NOT EXISTS ` + insertTriggerName + `
BEFORE INSERT ON bookings
WHEN EXISTS (
	SELECT 1 FROM bookings
	WHERE room_number = NEW.room_number
		AND check_in_date < NEW.check_out_date
		AND check_out_date > NEW.check_in_date
)
BEGIN
	SELECT RAISE(ABORT, 'booking overlap');
END`

const createUpdateTriggerSQL = `CREATE TRIGGER IF NOT EXISTS ` + updateTriggerName + `
BEFORE UPDATE OF room_number, check_in_date, check_out_date ON bookings
WHEN EXISTS (
	SELECT 1 FROM bookings
	WHERE id != OLD.id
		AND room_number = NEW.room_number
		AND check_in_date < NEW.check_out_date
		AND check_out_date > NEW.check_in_date
)
BEGIN
	SELECT RAISE(ABORT, 'booking overlap');
END`

var guardStatements = []string{createIndexSQL, createInsertTriggerSQL, createUpdateTriggerSQL}

var dropGuardStatements = []string{
	"DROP TRIGGER IF EXISTS " + insertTriggerName,
	"DROP TRIGGER IF EXISTS " + updateTriggerName,
	"DROP INDEX IF EXISTS " + indexName,
}

// Error reports a step of schema reconciliation that failed. Startup logs it
// and keeps serving.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("bookings schema %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Snapshotter copies the database file somewhere safe before a destructive step.
type Snapshotter interface {
	Snapshot(ctx context.Context, label string) (string, error)
}

// ErrSnapshotDisabled is returned by a Snapshotter with nowhere to write.
var ErrSnapshotDisabled = errors.New("snapshot disabled")

type Manager interface {
	EnsureSchema(ctx context.Context) error
}

type managerImpl struct {
	db       *sqlite.Connection
	otel     otel.Otel
	snapshot Snapshotter
	now      func() time.Time
}

func New(db *sqlite.Connection, otel otel.Otel, snapshot Snapshotter) Manager {
	return NewWithClock(db, otel, snapshot, time.Now)
}

// NewWithClock is New with a fixed clock for the backup table suffix.
func NewWithClock(db *sqlite.Connection, otel otel.Otel, snapshot Snapshotter, now func() time.Time) Manager {
	return &managerImpl{
		db:       db,
		otel:     otel,
		snapshot: snapshot,
		now:      now,
	}
}

// EnsureSchema makes the bookings table canonical. A missing table is
// created. A table lacking a required column, or carrying a NOT NULL column
// without default that inserts cannot fill, is renamed to a timestamped
// backup and its rows are copied into a fresh canonical table. A table that
// only lacks members gets it added in place.
func (m *managerImpl) EnsureSchema(ctx context.Context) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelSchemaScopeName, constant.OtelSchemaScopeName+".EnsureSchema")
	defer scope.End()
	defer scope.TraceIfError(&err)

	exists, err := tableExists(ctx, m.db.DB, model.TableName)
	if err != nil {
		return &Error{Op: "inspect", Err: err}
	}

	if !exists {
		if err = m.inTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			return execAll(ctx, tx, append([]string{createTableSQL}, guardStatements...))
		}); err != nil {
			return &Error{Op: "create", Err: err}
		}

		log.Info().Str("table", model.TableName).Msg("Created bookings table")

		return nil
	}

	columns, err := tableColumns(ctx, m.db.DB, model.TableName)
	if err != nil {
		return &Error{Op: "inspect", Err: err}
	}

	plan := Inspect(columns)

	switch {
	case plan.NeedsMigration():
		m.takeSnapshot(ctx)

		var backup string

		if err = m.inTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			var txErr error
			backup, txErr = m.migrate(ctx, tx, columns)

			return txErr
		}); err != nil {
			return &Error{Op: "migrate", Err: err}
		}

		log.Warn().
			Strs("missing", plan.Missing).
			Strs("blocking", plan.Blocking).
			Str("backup", backup).
			Msg("Rebuilt bookings table, legacy rows kept in backup table")

		return nil
	case plan.AddMembers:
		if _, err = m.db.DB.ExecContext(ctx, "ALTER TABLE bookings ADD COLUMN members INTEGER NOT NULL DEFAULT 1"); err != nil {
			return &Error{Op: "add_column", Err: err}
		}

		log.Info().Str("column", model.FieldMembers).Msg("Added column to bookings table")
	}

	if err = execAll(ctx, m.db.DB, guardStatements); err != nil {
		return &Error{Op: "guard", Err: err}
	}

	return nil
}

func (m *managerImpl) migrate(ctx context.Context, tx *sqlx.Tx, legacy []Column) (string, error) {
	backup, err := m.backupName(ctx, tx)
	if err != nil {
		return "", err
	}

	// Triggers and indexes follow a renamed table, so they have to go first
	// or the IF NOT EXISTS below would skip recreating them.
	if err = execAll(ctx, tx, dropGuardStatements); err != nil {
		return "", err
	}

	if _, err = tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE bookings RENAME TO %s", quote(backup))); err != nil {
		return "", fmt.Errorf("failed to rename legacy table: %w", err)
	}

	if _, err = tx.ExecContext(ctx, createTableSQL); err != nil {
		return "", fmt.Errorf("failed to create bookings table: %w", err)
	}

	copySQL := fmt.Sprintf("INSERT INTO bookings (%s) SELECT %s FROM %s",
		strings.Join(CanonicalColumns, ", "),
		strings.Join(BuildCopySelect(legacy), ", "),
		quote(backup),
	)

	result, err := tx.ExecContext(ctx, copySQL)
	if err != nil {
		return "", fmt.Errorf("failed to copy legacy rows: %w", err)
	}

	if err = execAll(ctx, tx, guardStatements); err != nil {
		return "", err
	}

	copied, _ := result.RowsAffected()
	log.Info().Int64("rows", copied).Str("from", backup).Msg("Copied legacy bookings")

	return backup, nil
}

// backupName picks bookings_legacy_<unix millis>, moving forward a
// millisecond at a time past names already taken.
func (m *managerImpl) backupName(ctx context.Context, tx *sqlx.Tx) (string, error) {
	millis := m.now().UnixMilli()

	for {
		name := fmt.Sprintf("%s%d", backupPrefix, millis)

		taken, err := tableExists(ctx, tx, name)
		if err != nil {
			return "", err
		}

		if !taken {
			return name, nil
		}

		millis++
	}
}

func (m *managerImpl) takeSnapshot(ctx context.Context) {
	if m.snapshot == nil {
		return
	}

	location, err := m.snapshot.Snapshot(ctx, "pre-migration")

	switch {
	case errors.Is(err, ErrSnapshotDisabled):
		log.Debug().Msg("Skipping pre-migration snapshot")
	case err != nil:
		log.Error().Err(err).Msg("Failed to snapshot database before migration")
	default:
		log.Info().Str("location", location).Msg("Snapshot taken before migration")
	}
}

func (m *managerImpl) inTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) (err error) {
	tx, err := m.db.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()

			return
		}

		if err = tx.Commit(); err != nil {
			err = fmt.Errorf("failed to commit transaction: %w", err)
		}
	}()

	return fn(ctx, tx)
}

func tableExists(ctx context.Context, q sqlx.QueryerContext, name string) (bool, error) {
	var count int

	if err := sqlx.GetContext(ctx, q, &count, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name); err != nil {
		return false, fmt.Errorf("failed to look up table %s: %w", name, err)
	}

	return count > 0, nil
}

func tableColumns(ctx context.Context, q sqlx.QueryerContext, name string) ([]Column, error) {
	columns := []Column{}

	if err := sqlx.SelectContext(ctx, q, &columns, fmt.Sprintf("PRAGMA table_info(%s)", quote(name))); err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", name, err)
	}

	return columns, nil
}

func execAll(ctx context.Context, exec sqlx.ExecerContext, statements []string) error {
	for _, statement := range statements {
		if _, err := exec.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	return nil
}
