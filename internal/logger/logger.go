package logger

import (
	"io"

	"storefront-delivery/internal/config"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus so services depend on one local type.
type Logger struct {
	*logrus.Logger
}

// New builds the application logger from config. Unknown levels fall back to
// info; the format is "json" or plain text.
func New(cfg *config.Config) *Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return &Logger{Logger: log}
}

// NewNop returns a discard-everything logger for tests.
func NewNop() *Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Logger{Logger: log}
}
