// Package store writes color annotations into the product table.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"
)

// Dialect binds a database/sql driver to its form of the annotation update.
type Dialect struct {
	// Driver is the database/sql driver name.
	Driver string
	// Query is the conditional update statement, rebound for Driver before use.
	Query string
	// Args builds the statement arguments.
	Args func(annotation, productName string) []any
}

// SQLServer is the dialect of the production product database.
var SQLServer = Dialect{
	Driver: "sqlserver",
	Query: "UPDATE Products SET ProductDescription = @Color + COALESCE(ProductDescription, '') " +
		"WHERE ProductName = @ProdName AND ProductDescription NOT LIKE '%Color:%'",
	Args: func(annotation, productName string) []any {
		return []any{sql.Named("Color", annotation), sql.Named("ProdName", productName)}
	},
}

// annotateQuery is written with ? bindvars; ProductStore rebinds it for the
// driver (postgres gets $1, $2).
const annotateQuery = "UPDATE Products SET ProductDescription = ? || COALESCE(ProductDescription, '') " +
	"WHERE ProductName = ? AND ProductDescription NOT LIKE '%Color:%'"

// Postgres uses string concatenation and positional parameters.
var Postgres = Dialect{
	Driver: "postgres",
	Query:  annotateQuery,
	Args:   positionalArgs,
}

// SQLite is used for local runs and tests.
var SQLite = Dialect{
	Driver: "sqlite",
	Query:  annotateQuery,
	Args:   positionalArgs,
}

func positionalArgs(annotation, productName string) []any {
	return []any{annotation, productName}
}

// DialectFor returns the dialect registered for a driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "sqlserver", "mssql":
		return SQLServer, nil
	case "postgres":
		return Postgres, nil
	case "sqlite":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported driver: %s (must be sqlserver, postgres, or sqlite)", driver)
	}
}

// ProductStore executes annotation updates against the Products table.
type ProductStore struct {
	db      *sqlx.DB
	dialect Dialect
}

// Open connects to the product database using the named driver.
func Open(driver, dsn string) (*ProductStore, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return New(db, dialect), nil
}

// New wraps an existing connection pool. Updates run one at a time, so the
// pool is limited to a single connection.
func New(db *sqlx.DB, dialect Dialect) *ProductStore {
	db.SetMaxOpenConns(1)
	return &ProductStore{db: db, dialect: dialect}
}

// AnnotateDescription prepends annotation to the description of the product
// named productName, unless that description already contains "Color:".
// It returns the number of rows changed.
func (s *ProductStore) AnnotateDescription(ctx context.Context, annotation, productName string) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.statement(), s.dialect.Args(annotation, productName)...)
	if err != nil {
		return 0, fmt.Errorf("annotate %q: %w", productName, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("annotate %q: rows affected: %w", productName, err)
	}
	return n, nil
}

// statement returns the update in the driver's bindvar syntax. Named
// parameters (@Color) contain no ? and pass through unchanged.
func (s *ProductStore) statement() string {
	return s.db.Rebind(s.dialect.Query)
}

// Close closes the underlying connection pool.
func (s *ProductStore) Close() error {
	return s.db.Close()
}
