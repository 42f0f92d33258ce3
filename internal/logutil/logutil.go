// Package logutil configures the process-wide zerolog logger: JSON
// with a severity field on GCE, console output everywhere else.
package logutil

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cloud.google.com/go/compute/metadata"
)

// ConfigureLogger sets up the global logger. Timestamps are Unix epoch
// seconds to keep log lines compact.
func ConfigureLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.With().Caller().Stack().Logger()
	if metadata.OnGCE() {
		// Stackdriver derives the log level from a severity field.
		log.Logger = log.Hook(SeverityHook{})
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// SeverityHook mirrors the zerolog level into the field GCP's log
// router reads.
type SeverityHook struct{}

func (h SeverityHook) Run(e *zerolog.Event, level zerolog.Level, _ string) {
	e.Str("severity", level.String())
}
