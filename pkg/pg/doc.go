// Package pg provides the PostgreSQL event store for deployments that already
// run Postgres. It wraps a pgx/v5 connection pool and brings the schema up with
// embedded goose migrations.
//
// Usage:
//
//	var cfg pg.Config
//	if err := env.Parse(&cfg); err != nil {
//		return err
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//		return err
//	}
//
//	store := pg.NewStore(pool)
//
// The same Store value serves as queue.Writer for the persister and
// queue.Reader for the executor. Due times are stored as unix milliseconds.
//
// Helpers such as IsCheckViolationError and IsConnectionError classify errors
// returned by pgx.
package pg
