// Package logger builds *slog.Logger values for the service and keeps
// attribute names consistent across packages.
//
// New takes functional options for format, level, output and static
// attributes. WithEnvironment picks the defaults for an environment: text at
// debug level for development, JSON at info level for production. Context
// extractors registered with WithContextExtractors add attributes taken from
// the context of each *Context logging call, which is how request ids reach
// handler logs.
//
// Usage:
//
//	opts, err := logger.FromConfig(cfg)
//	if err != nil {
//		return err
//	}
//	log := logger.New(append(opts,
//		logger.WithContextExtractors(requestid.LogExtractor()),
//	)...)
//	logger.SetAsDefault(log)
//
//	log.Info("task executed", logger.TaskID(7), logger.Variant("sleep"))
package logger
