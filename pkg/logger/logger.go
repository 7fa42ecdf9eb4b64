package logger

import (
	"os"
	"time"

	"github.com/Jidetireni/gym-manager/internal/config"
	"github.com/rs/zerolog"
)

type Logger struct {
	*zerolog.Logger
}

func New(cfg config.Config) *Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if cfg.IsDev {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	// stdout belongs to the CLI output
	z := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if cfg.IsDev {
		z = z.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	return &Logger{Logger: &z}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	z := zerolog.Nop()
	return &Logger{Logger: &z}
}
