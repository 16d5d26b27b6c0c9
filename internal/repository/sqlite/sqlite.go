package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mattn/go-sqlite3"

	"github.com/srs-sudeep/vyuwer/internal/repository"
)

// Options tune every connection opened against a target.
type Options struct {
	BusyTimeoutMs int
	JournalMode   string
}

// DefaultOptions matches the settings used for the camera databases.
var DefaultOptions = Options{
	BusyTimeoutMs: 5000,
	JournalMode:   "WAL",
}

// DB describes one SQLite storage target. It holds no open handle: each
// operation opens its own connection and closes it before returning.
type DB struct {
	target repository.Target
	opts   Options
}

// New creates a DB for the given storage target.
func New(target repository.Target, opts Options) *DB {
	return &DB{target: target, opts: opts}
}

// Target returns the storage target this DB operates on.
func (db *DB) Target() repository.Target {
	return db.target
}

// dsn builds the go-sqlite3 connection string for the target.
func (db *DB) dsn() string {
	params := url.Values{}
	if db.opts.JournalMode != "" {
		params.Set("_journal_mode", db.opts.JournalMode)
	}
	if db.opts.BusyTimeoutMs > 0 {
		params.Set("_busy_timeout", strconv.Itoa(db.opts.BusyTimeoutMs))
	}
	if len(params) == 0 {
		return string(db.target)
	}
	return string(db.target) + "?" + params.Encode()
}

// open opens a single connection to the target and checks that the file is reachable.
func (db *DB) open(ctx context.Context) (*sql.DB, error) {
	if db.target == "" {
		return nil, fmt.Errorf("failed to open database: %w: empty storage target", repository.ErrStorageUnavailable)
	}

	conn, err := sql.Open("sqlite3", db.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w: %w", db.target, repository.ErrStorageUnavailable, err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		if classify(err) == repository.ErrBusy {
			return nil, wrapErr("open database "+string(db.target), err)
		}
		return nil, fmt.Errorf("failed to open database %s: %w: %w", db.target, repository.ErrStorageUnavailable, err)
	}

	return conn, nil
}

// classify maps a go-sqlite3 error onto a repository error kind, or nil.
func classify(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return nil
	}

	switch sqliteErr.Code & 0xff {
	case sqlite3.ErrConstraint:
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
			return repository.ErrUniqueViolation
		}
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return repository.ErrBusy
	case sqlite3.ErrCantOpen, sqlite3.ErrPerm, sqlite3.ErrNotADB, sqlite3.ErrIoErr, sqlite3.ErrReadonly, sqlite3.ErrAuth:
		return repository.ErrStorageUnavailable
	}
	return nil
}

// wrapErr wraps err with the action that failed and its error kind, if any.
func wrapErr(action string, err error) error {
	if kind := classify(err); kind != nil {
		return fmt.Errorf("failed to %s: %w: %w", action, kind, err)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
