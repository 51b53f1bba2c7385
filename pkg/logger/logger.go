package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New создает JSON-логгер. debug принудительно включает уровень debug.
func New(logLevel string, debug bool) *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	log.SetOutput(os.Stdout)

	// Уровень логирования
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel // Уровень по умолчанию, если передан некорректный
	}
	if debug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	return log
}
