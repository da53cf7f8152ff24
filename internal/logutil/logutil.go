// internal/logutil/logutil.go
package logutil

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns the application logger: console format on w (normally stderr),
// app-tagged. Quiet keeps errors only.
func New(app string, w io.Writer, quiet bool) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if quiet {
		lvl = zerolog.ErrorLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(lvl).With().Timestamp().Str("app", app).Logger()
}
