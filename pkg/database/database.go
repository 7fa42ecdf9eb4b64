package database

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/reflectx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

//go:embed schema/*.sql
var schemaFS embed.FS

type DB struct {
	DB         *sqlx.DB
	Type       string
	SqlBuilder sq.StatementBuilderType
}

// New opens the database, applies the schema and returns a cleanup func that
// closes the connection.
func New(URL string, dbType string) (*DB, func(), error) {
	if dbType == "" {
		dbType = TypeSQLite
	}

	db, cleanup, err := initDB(URL, dbType)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gymDB := &DB{
		DB:         db,
		Type:       dbType,
		SqlBuilder: sq.StatementBuilder.PlaceholderFormat(placeholderFor(dbType)),
	}

	if err := gymDB.migrate(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return gymDB, cleanup, nil
}

func sqliteDSN(URL string) string {
	if strings.Contains(URL, "_pragma=foreign_keys") {
		return URL
	}

	sep := "?"
	if strings.Contains(URL, "?") {
		sep = "&"
	}
	return URL + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func placeholderFor(dbType string) sq.PlaceholderFormat {
	if dbType == TypePostgres {
		return sq.Dollar
	}
	return sq.Question
}

func initDB(URL string, dbType string) (*sqlx.DB, func(), error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch dbType {
	case TypeSQLite:
		db, err = sqlx.Open("sqlite", sqliteDSN(URL))
	case TypePostgres:
		db, err = sqlx.Open("postgres", URL)
	default:
		return nil, nil, fmt.Errorf("unsupported database type %q", dbType)
	}
	if err != nil {
		return nil, nil, err
	}

	// single writer, single reader: the process owns exactly one connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		_ = db.Close()
	}
	db.Mapper = reflectx.NewMapper("json")

	return db, cleanup, nil
}

func (d *DB) migrate() error {
	schema, err := schemaFS.ReadFile("schema/" + d.Type + ".sql")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, stmt := range strings.Split(string(schema), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := d.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}

	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
