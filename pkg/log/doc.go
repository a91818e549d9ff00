/*
Package log provides structured logging for the exporter using zerolog.

A single global Logger is configured once at startup with Init. Packages derive
child loggers with WithComponent so every line carries the emitting component,
and the collector further tags each collection pass with WithPassID.

	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
		Output:     os.Stderr,
	})

	logger := log.WithComponent("collector")
	logger.Info().Str("driver", "postgres").Msg("collector ready")

Console output is the default and is meant for local runs. JSON output is for
log shippers. Levels follow zerolog: debug, info, warn, error. Per-query row
counts are logged at debug, failed passes at error.
*/
package log
