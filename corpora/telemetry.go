package corpora

import "github.com/rs/zerolog"

// TelemetrySink receives the outcome of every dispatched request. It is
// invoked exactly once per dispatch, after the response (or failure) is
// known, for both buffered and streamed calls. Implementations must be safe
// for concurrent use.
type TelemetrySink interface {
	Record(operation string, err error)
}

// NopSink discards all telemetry. It is the default.
type NopSink struct{}

// Record implements TelemetrySink.
func (NopSink) Record(string, error) {}

// LogSink reports request outcomes through a zerolog logger.
type LogSink struct {
	Logger zerolog.Logger
}

// Record implements TelemetrySink.
func (s LogSink) Record(operation string, err error) {
	if err != nil {
		s.Logger.Warn().Err(err).Str("operation", operation).Msg("API call failed")
		return
	}
	s.Logger.Debug().Str("operation", operation).Msg("API call completed")
}
