// Package logger provides the two-level logger used by the huffzip command.
package logger

import (
	"io"
	"log"
)

type Logger interface {
	Infof(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

type stdLogger struct {
	info *log.Logger
	err  *log.Logger
}

// New returns a Logger writing to w.  Info lines are dropped when quiet is
// set; error lines are always written.
func New(w io.Writer, quiet bool) Logger {
	infoOut := w
	if quiet {
		infoOut = io.Discard
	}
	return &stdLogger{
		info: log.New(infoOut, "[INFO] ", 0),
		err:  log.New(w, "[ERROR] ", 0),
	}
}

func (l *stdLogger) Infof(format string, v ...interface{})  { l.info.Printf(format, v...) }
func (l *stdLogger) Errorf(format string, v ...interface{}) { l.err.Printf(format, v...) }
