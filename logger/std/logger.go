package std

import (
	"fmt"
	"io"
	"os"

	"github.com/ezraisw/konvert/logger"
)

type stdLogger struct {
	out    io.Writer
	errOut io.Writer
	debug  bool
}

func NewLogger() logger.Logger {
	return &stdLogger{
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

// NewLoggerWithWriters writes Info and Debug to out and Error to errOut.
// Debug lines are only written when debug is set.
func NewLoggerWithWriters(out, errOut io.Writer, debug bool) logger.Logger {
	return &stdLogger{
		out:    out,
		errOut: errOut,
		debug:  debug,
	}
}

func (l stdLogger) Info(args ...interface{}) {
	fmt.Fprintln(l.out, args...)
}

func (l stdLogger) Debug(args ...interface{}) {
	if !l.debug {
		return
	}
	fmt.Fprintln(l.out, args...)
}

func (l stdLogger) Error(args ...interface{}) {
	fmt.Fprintln(l.errOut, args...)
}
