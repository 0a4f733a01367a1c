package logrus

import (
	"github.com/ezraisw/konvert/logger"
	"github.com/sirupsen/logrus"
)

// NewLogger wraps an existing logrus logger.
func NewLogger(l *logrus.Logger) logger.Logger {
	return l
}

// NewLoggerWithLevel creates a text-formatted logrus logger at the given level.
func NewLoggerWithLevel(level string) (logger.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{})
	return l, nil
}
