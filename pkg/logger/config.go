package logger

type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"` // Env selects defaults: production uses JSON at info level, anything else text at debug.
	Service string `env:"APP_NAME" envDefault:"eventqueue"` // Service is added to every record as "service".
	Level   string `env:"LOG_LEVEL"`                        // Level overrides the environment default: debug, info, warn or error.
}
