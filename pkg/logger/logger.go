package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// New returns a stdlib-backed logger with component prefix.
func New(component string) *log.Logger {
	prefix := fmt.Sprintf("[%s] ", component)
	return log.New(os.Stdout, prefix, log.LstdFlags)
}

// NewTee returns a logger that writes to stdout and to w, typically the
// run log file kept alongside the extraction outputs.
func NewTee(component string, w io.Writer) *log.Logger {
	prefix := fmt.Sprintf("[%s] ", component)
	return log.New(io.MultiWriter(os.Stdout, w), prefix, log.LstdFlags)
}
