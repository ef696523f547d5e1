package logger

import (
	"github.com/sirupsen/logrus"
)

// Log is the shared logger instance for the web frontend.
var Log = logrus.New()

// Init configures the logger. Level defaults to info when LOG_LEVEL is
// unset or unparsable.
func Init(level string) {
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if lvl, err := logrus.ParseLevel(level); err == nil {
		Log.SetLevel(lvl)
	}
}
