package collaborators

import (
	"os"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts zerolog.Logger to the Logger contract. fields are
// supplied as alternating key/value pairs, matching the variadic
// convenience other structured loggers in the pack (zerolog itself,
// zap) favor over a map literal at every call site.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger builds a Logger writing JSON lines to os.Stderr.
func NewZerologLogger() *ZerologLogger {
	return &ZerologLogger{log: zerolog.New(os.Stderr).With().Timestamp().Logger()}
}

func (l *ZerologLogger) Debug(msg string, fields ...any) {
	withFields(l.log.Debug(), fields).Msg(msg)
}

func (l *ZerologLogger) Info(msg string, fields ...any) {
	withFields(l.log.Info(), fields).Msg(msg)
}

func (l *ZerologLogger) Warn(msg string, fields ...any) {
	withFields(l.log.Warn(), fields).Msg(msg)
}

func (l *ZerologLogger) Error(msg string, err error, fields ...any) {
	withFields(l.log.Error().Err(err), fields).Msg(msg)
}

// withFields applies alternating key/value pairs to event, dropping a
// trailing unpaired key rather than panicking on malformed call sites.
func withFields(event *zerolog.Event, fields []any) *zerolog.Event {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		event = event.Interface(key, fields[i+1])
	}
	return event
}
