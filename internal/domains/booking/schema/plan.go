package schema

import (
	"database/sql"
	"fmt"
	"strings"

	"hotel/internal/domains/booking/model"
)

// Column is one row of PRAGMA table_info.
type Column struct {
	CID     int            `db:"cid"`
	Name    string         `db:"name"`
	Type    string         `db:"type"`
	NotNull bool           `db:"notnull"`
	Default sql.NullString `db:"dflt_value"`
	PK      int            `db:"pk"`
}

// rowidAlias reports whether the column is an INTEGER PRIMARY KEY, which
// SQLite fills in by itself even when declared NOT NULL.
func (c Column) rowidAlias() bool {
	return c.PK > 0 && strings.EqualFold(strings.TrimSpace(c.Type), "INTEGER")
}

// target is a canonical column and the legacy names its data may live under,
// in order of preference.
type target struct {
	name     string
	aliases  []string
	fallback string
	numeric  bool
}

var targets = []target{
	{name: model.FieldGuestName, aliases: []string{"guest_name", "guestName", "name", "guest"}, fallback: "''"},
	{name: model.FieldGuestPhone, aliases: []string{"guest_phone", "guestPhone", "phone", "mobile"}, fallback: "''"},
	{name: model.FieldRoomNumber, aliases: []string{"room_number", "roomNumber", "room"}, fallback: "''"},
	{name: model.FieldCheckInDate, aliases: []string{"check_in_date", "checkInDate", "check_in", "checkin_date"}, fallback: "''"},
	{name: model.FieldCheckOutDate, aliases: []string{"check_out_date", "checkOutDate", "check_out", "checkout_date"}, fallback: "''"},
	{name: model.FieldMembers, aliases: []string{"members", "guests", "party_size", "partySize"}, fallback: "1", numeric: true},
}

// RequiredColumns must exist for the table to be usable as is. id is required
// too, since every single-booking operation addresses rows by it.
var RequiredColumns = []string{
	model.FieldID,
	model.FieldGuestName,
	model.FieldGuestPhone,
	model.FieldRoomNumber,
	model.FieldCheckInDate,
	model.FieldCheckOutDate,
}

// CanonicalColumns is the insert column list of the canonical table, in order.
var CanonicalColumns = []string{
	model.FieldID,
	model.FieldGuestName,
	model.FieldGuestPhone,
	model.FieldRoomNumber,
	model.FieldCheckInDate,
	model.FieldCheckOutDate,
	model.FieldMembers,
}

// Plan is the outcome of inspecting an existing bookings table.
type Plan struct {
	Missing    []string
	Blocking   []string
	AddMembers bool
}

// NeedsMigration is true when the table has to be rebuilt.
func (p Plan) NeedsMigration() bool {
	return len(p.Missing) > 0 || len(p.Blocking) > 0
}

// Inspect decides what an existing table needs. Column names compare
// case-insensitively, the way SQLite resolves them.
func Inspect(columns []Column) Plan {
	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[strings.ToLower(col.Name)] = true
	}

	// Inserts always name the data columns. id is filled by SQLite only when
	// it is a rowid alias, so it takes the blocking test like any other column.
	supplied := make(map[string]bool, len(targets))
	for _, t := range targets {
		supplied[t.name] = true
	}

	plan := Plan{}

	for _, name := range RequiredColumns {
		if !present[name] {
			plan.Missing = append(plan.Missing, name)
		}
	}

	for _, col := range columns {
		if supplied[strings.ToLower(col.Name)] {
			continue
		}

		if col.NotNull && !col.Default.Valid && !col.rowidAlias() {
			plan.Blocking = append(plan.Blocking, col.Name)
		}
	}

	plan.AddMembers = !plan.NeedsMigration() && !present[model.FieldMembers]

	return plan
}

// BuildCopySelect returns one select expression per entry of CanonicalColumns,
// reading each from the first legacy column that matches one of its aliases.
func BuildCopySelect(legacy []Column) []string {
	byName := make(map[string]string, len(legacy))
	for _, col := range legacy {
		key := strings.ToLower(col.Name)
		if _, ok := byName[key]; !ok {
			byName[key] = col.Name
		}
	}

	exprs := make([]string, 0, len(CanonicalColumns))

	exprs = append(exprs, idExpression(legacy))

	for _, t := range targets {
		source := ""

		for _, alias := range t.aliases {
			if name, ok := byName[strings.ToLower(alias)]; ok {
				source = name

				break
			}
		}

		exprs = append(exprs, t.expression(source))
	}

	return exprs
}

// idExpression keeps legacy ids that can live in an INTEGER PRIMARY KEY.
// Anything else, such as text ids, gets a fresh id from SQLite.
func idExpression(legacy []Column) string {
	for _, col := range legacy {
		if !strings.EqualFold(col.Name, model.FieldID) {
			continue
		}

		if col.rowidAlias() {
			return quote(col.Name)
		}

		return fmt.Sprintf("CASE WHEN typeof(%[1]s) = 'integer' THEN %[1]s END", quote(col.Name))
	}

	return "NULL"
}

func (t target) expression(source string) string {
	if source == "" {
		return t.fallback
	}

	if t.numeric {
		return fmt.Sprintf("CASE WHEN CAST(%[1]s AS INTEGER) >= 1 THEN CAST(%[1]s AS INTEGER) ELSE %[2]s END", quote(source), t.fallback)
	}

	return fmt.Sprintf("COALESCE(CAST(%s AS TEXT), %s)", quote(source), t.fallback)
}

func quote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}
