package sqlite

import "time"

type Config struct {
	Path            string        `env:"SQLITE_PATH" envDefault:"eventqueue.db"`                // Path is the event store file. The schema is created only when the file does not exist.
	BusyTimeout     time.Duration `env:"SQLITE_BUSY_TIMEOUT" envDefault:"5s"`                   // BusyTimeout is how long a connection waits on a locked database.
	MigrationsTable string        `env:"SQLITE_MIGRATIONS_TABLE" envDefault:"schema_migrations"` // MigrationsTable is the name of the table used to store the migration version.
}
