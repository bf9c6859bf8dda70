package database

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"github.com/litebase/memvfs/pkg/buffer"
	"github.com/litebase/memvfs/pkg/vfs"

	_ "github.com/mattn/go-sqlite3"
)

var ErrEmptyPath = errors.New("database: path cannot be empty")

// DatabaseConnectionConfigStatements are applied to the connection right
// after it is opened.
var DatabaseConnectionConfigStatements = []string{
	// Temporary tables and indices stay in anonymous memory files instead
	// of spilling to the engine's default temp directory.
	"PRAGMA temp_store = memory",

	"PRAGMA foreign_keys = ON",
}

// Database is an SQLite database whose main file lives in a memory buffer.
// The buffer stays bound to the path for the lifetime of the Database, even
// while the engine has no file open, and is handed back by Close.
type Database struct {
	DB     *sql.DB
	buffer *buffer.Buffer
	closed bool
	env    *vfs.Environment
	path   string
}

// DSN builds the data source name that routes path through the environment's
// VFS.
func DSN(vfsName, path string) string {
	return fmt.Sprintf("file:%s?vfs=%s", url.PathEscape(path), url.QueryEscape(vfsName))
}

// Open opens path as a database backed by mem. A nil mem starts an empty
// database. When path is already open elsewhere in env, mem is ignored and
// the existing buffer is shared.
func Open(env *vfs.Environment, path string, mem *buffer.Buffer) (*Database, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	if mem == nil {
		mem = buffer.New()
	}

	shared, err := env.Bind(path, mem)

	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", DSN(env.Name(), path))

	if err != nil {
		env.Unbind(path)

		return nil, err
	}

	// A single connection keeps one engine handle per Database. Memory
	// files grant every lock, so a second connection would not be excluded.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := configure(db); err != nil {
		db.Close()
		env.Unbind(path)

		return nil, fmt.Errorf("failed to open database %q: %w", path, err)
	}

	return &Database{
		DB:     db,
		buffer: shared,
		env:    env,
		path:   path,
	}, nil
}

func configure(db *sql.DB) error {
	if err := db.Ping(); err != nil {
		return err
	}

	// Reading the schema cookie validates the header of a supplied image.
	var version int64

	if err := db.QueryRow("PRAGMA schema_version").Scan(&version); err != nil {
		return err
	}

	for _, statement := range DatabaseConnectionConfigStatements {
		if _, err := db.Exec(statement); err != nil {
			return err
		}
	}

	return nil
}

// Buffer returns the buffer holding the database image. Its used bytes are
// a complete database file whenever no transaction is in progress.
func (d *Database) Buffer() *buffer.Buffer {
	return d.buffer
}

// Close closes the engine connection and releases the binding on the path.
// The returned hand-back carries the buffer when the caller owns it again.
func (d *Database) Close() (vfs.Handoff, error) {
	if d.closed {
		return vfs.Handoff{}, vfs.ErrInvalidHandle
	}

	d.closed = true

	closeErr := d.DB.Close()
	h, err := d.env.Unbind(d.path)

	if closeErr != nil {
		return h, errors.Join(closeErr, err)
	}

	return h, err
}

func (d *Database) Exec(query string, args ...any) (sql.Result, error) {
	return d.DB.Exec(query, args...)
}

func (d *Database) Path() string {
	return d.path
}

// Query runs a statement and collects its result set.
func (d *Database) Query(query string, args ...any) (*Result, error) {
	rows, err := d.DB.Query(query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	columns, err := rows.Columns()

	if err != nil {
		return nil, err
	}

	result := &Result{
		Columns: columns,
		Rows:    make([][]any, 0),
	}

	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))

		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		result.Rows = append(result.Rows, values)
	}

	return result, rows.Err()
}
