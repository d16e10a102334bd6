package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "imagegram-api"

// New builds the root logger. Production logs at info without color;
// anything else gets debug-level console output.
func New(environment string) zerolog.Logger {
	production := environment == "production"

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    production,
	}

	if production {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	return zerolog.New(output).With().
		Timestamp().
		Str("service", serviceName).
		Str("env", environment).
		Logger()
}
