package edp

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Log is the package logger. The CLI configures its level and formatter.
var Log = logrus.New()

// SetLogOutput redirects the package logger, used by tests to silence it.
func SetLogOutput(w io.Writer) {
	Log.SetOutput(w)
}

func DebugLog(format string, args ...interface{}) {
	if !Debug {
		return
	}
	Log.Debugf(format, args...)
}

var logged sync.Map

// DebugLogOnce logs a debug message the first time its format is seen.
func DebugLogOnce(format string, args ...interface{}) {
	if !Debug {
		return
	}
	if _, seen := logged.LoadOrStore(format, struct{}{}); seen {
		return
	}
	Log.Debugf(format, args...)
}
