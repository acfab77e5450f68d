// Package logutil provides logging utilities.
//
// All loggers share one logrus.Logger whose output is discarded until
// SetOutput or SetOutputFile is called, so that library packages can log
// freely without ever writing to the operator's console.
package logutil

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu   sync.Mutex
	base = newBase()
	// If the output is set by SetOutputFile, outFile is that file. Otherwise it
	// is nil.
	outFile *os.File
)

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return l
}

// GetLogger gets a logger tagged with the given component name, such as
// "lineedit".
func GetLogger(component string) *logrus.Entry {
	return base.WithField("component", component)
}

// SetOutput redirects the output of all loggers obtained with GetLogger to the
// new io.Writer. If the old output was a file opened by SetOutputFile, it is
// closed.
func SetOutput(newOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	setOutput(newOut)
}

func setOutput(newOut io.Writer) {
	if outFile != nil {
		outFile.Close()
		outFile = nil
	}
	base.SetOutput(newOut)
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger to
// the named file. If the old output was a file opened by SetOutputFile, it is
// closed. The new file is appended to. SetOutputFile("") is equivalent to
// SetOutput(io.Discard).
func SetOutputFile(fname string) error {
	mu.Lock()
	defer mu.Unlock()
	if fname == "" {
		setOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	setOutput(file)
	outFile = file
	return nil
}
