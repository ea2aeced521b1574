package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the event store for writing. When no file exists at cfg.Path the
// file is created and the schema applied; an existing file is opened as is,
// without running any schema statements.
func Open(ctx context.Context, cfg Config, log logger) (*Store, error) {
	if cfg.Path == "" {
		return nil, ErrEmptyPath
	}

	fresh := false
	if _, err := os.Stat(cfg.Path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Join(ErrFailedToOpenDB, err)
		}
		fresh = true
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, errors.Join(ErrFailedToOpenDB, fmt.Errorf("create store directory: %w", err))
		}
	}

	db, err := openDB(ctx, dsn(cfg, false))
	if err != nil {
		return nil, err
	}

	if fresh {
		log.InfoContext(ctx, "creating event store schema", "path", cfg.Path)
		if err := migrate(ctx, db, cfg, log); err != nil {
			_ = db.Close()
			// a schemaless file would be taken for an existing store on the next start
			if rmErr := removeStoreFiles(cfg.Path); rmErr != nil {
				return nil, errors.Join(err, rmErr)
			}
			return nil, err
		}
	}

	return &Store{db: db, path: cfg.Path}, nil
}

// OpenReader opens an existing event store read-only. It never creates the file.
func OpenReader(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, ErrEmptyPath
	}

	if _, err := os.Stat(cfg.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, cfg.Path)
		}
		return nil, errors.Join(ErrFailedToOpenDB, err)
	}

	db, err := openDB(ctx, dsn(cfg, true))
	if err != nil {
		return nil, err
	}

	return &Store{db: db, path: cfg.Path, readOnly: true}, nil
}

// removeStoreFiles deletes the database file and its sqlite sidecars.
func removeStoreFiles(path string) error {
	var errs []error
	for _, name := range []string{path, path + "-wal", path + "-shm", path + "-journal"} {
		if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDB, err)
	}

	// one connection per handle, so pragmas apply to every statement
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrFailedToOpenDB, err)
	}

	return db, nil
}

// dsn builds a URI filename for mattn/go-sqlite3. The writer runs in WAL mode
// with synchronous=FULL so a returned Insert or Complete survives a crash.
func dsn(cfg Config, readOnly bool) string {
	params := url.Values{}
	params.Set("_busy_timeout", strconv.FormatInt(cfg.BusyTimeout.Milliseconds(), 10))
	if readOnly {
		params.Set("mode", "ro")
	} else {
		params.Set("mode", "rwc")
		params.Set("_journal_mode", "WAL")
		params.Set("_synchronous", "FULL")
	}
	return "file:" + cfg.Path + "?" + params.Encode()
}
