package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Debug mode gets the human-readable
// console writer; release mode writes plain JSON lines.
func New(level, ginMode string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	w := io.Writer(os.Stdout)
	if ginMode != "release" {
		console := zerolog.NewConsoleWriter()
		console.TimeFormat = time.DateTime
		console.Out = os.Stdout
		w = console
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
