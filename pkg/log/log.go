// Package log centralizes logger construction so every binary emits the
// same format.
package log

import (
	"github.com/sirupsen/logrus"
)

// InitLogs returns a configured logger. An optional level name may be
// passed; it defaults to "info" and falls back to "info" when the name
// does not parse.
func InitLogs(level ...string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	log.SetLevel(logrus.InfoLevel)
	if len(level) > 0 {
		if parsed, err := logrus.ParseLevel(level[0]); err == nil {
			log.SetLevel(parsed)
		}
	}
	return log
}

// WithPrefix returns a logger entry that tags every line with a
// component name.
func WithPrefix(log logrus.FieldLogger, prefix string) logrus.FieldLogger {
	return log.WithField("component", prefix)
}
