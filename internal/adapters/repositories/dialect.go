package repositories

import (
	"fmt"
	"strconv"
	"strings"

	"visit-route-service/internal/platform/db"
)

// Dialect captures the SQL differences between the supported databases.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// DialectFor maps a database/sql driver name to its Dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case db.DriverSQLite:
		return SQLite, nil
	case db.DriverPostgres:
		return Postgres, nil
	}
	return SQLite, fmt.Errorf("dialect: unsupported driver %q", driver)
}

// Rebind rewrites "?" placeholders into "$n" for Postgres.
func (d Dialect) Rebind(q string) string {
	if d != Postgres {
		return q
	}

	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d Dialect) serialPrimaryKey() string {
	if d == Postgres {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}
