package resultlog

type Config struct {
	Path string `env:"RESULTLOG_PATH"` // Path of the result file. Empty means output.txt next to the event store.
}
