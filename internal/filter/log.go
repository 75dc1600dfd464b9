package filter

import (
	"io"

	"github.com/sirupsen/logrus"
)

// log is the package's diagnostic logger. It defaults to a silent logger so
// the core stays quiet in library use; the server wires its own logger in at
// startup via SetLogger.
var log logrus.FieldLogger = newSilentLogger()

// SetLogger redirects the package's diagnostic output. Passing nil restores
// the silent default. Not safe to call concurrently with running filters;
// call it once during process initialization.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		log = newSilentLogger()
		return
	}
	log = l
}

func newSilentLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
