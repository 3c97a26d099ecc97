/*
Package log provides structured logging for the event channel server using
zerolog.

The log package wraps zerolog with a global logger, configurable levels and
output format, and helpers that derive child loggers scoped to a component,
a channel, or a single proxy connection. All logs carry a timestamp.

# Configuration

  - Level: debug, info, warn or error (unknown values fall back to info)
  - JSONOutput: JSON lines for production, console writer otherwise
  - Output: any io.Writer, stdout when nil

# Context Loggers

  - WithComponent("dispatcher")
  - WithChannel("channel", "orders")
  - WithConnection("orders", "consumer", connID)

# Usage

	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
	})

	logger := log.WithChannel("channel", "orders")
	logger.Info().Int64("event_id", ev.ID).Msg("Event delivered")
	logger.Error().Err(err).Msg("Failed to record delivery outcome")

JSON output:

	{"level":"info","component":"channel","channel":"orders","event_id":42,"time":"2026-10-17T10:30:00Z","message":"Event delivered"}
*/
package log
