// Package sqlite implements the durable event store on a single sqlite file
// using mattn/go-sqlite3.
//
// The writer handle returned by Open runs in WAL mode with synchronous=FULL, so
// every Insert and Complete that returns nil is on disk. The schema is created
// from embedded goose migrations only when the file does not exist yet; an
// existing file is trusted as is.
//
// Readers use OpenReader, which opens the same file with mode=ro and fails with
// ErrStoreNotFound when the writer has not created it. Open the writer first:
//
//	w, err := sqlite.Open(ctx, cfg, slog.Default())
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//
//	r, err := sqlite.OpenReader(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//
// Timestamps are stored as UTC unix milliseconds.
package sqlite
