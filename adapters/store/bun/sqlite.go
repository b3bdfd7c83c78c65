package storebun

import (
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/goliatone/go-quotedoc/render"
)

// OpenSQLite opens a SQLite-backed Bun database for local template storage.
// Use ":memory:" for an ephemeral store.
func OpenSQLite(dsn string) (*bun.DB, error) {
	if dsn == "" {
		return nil, render.NewError(render.KindValidation, "sqlite dsn is required", nil)
	}
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, render.NewError(render.KindInternal, "failed to open sqlite database", err)
	}
	if dsn == ":memory:" {
		// each pooled connection would otherwise open its own database
		sqldb.SetMaxOpenConns(1)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}
