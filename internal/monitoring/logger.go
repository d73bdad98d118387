package monitoring

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/banshee-data/blobstats/internal/vision"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// StreamsForLevel maps a verbosity name to the vision log streams that
// should write to w. Each level includes the streams of the levels below it:
// "none" < "ops" < "diag" < "trace".
func StreamsForLevel(level string, w io.Writer) (vision.LogWriters, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "none", "off":
		return vision.LogWriters{}, nil
	case "ops", "":
		return vision.LogWriters{Ops: w}, nil
	case "diag":
		return vision.LogWriters{Ops: w, Diag: w}, nil
	case "trace":
		return vision.LogWriters{Ops: w, Diag: w, Trace: w}, nil
	default:
		return vision.LogWriters{}, fmt.Errorf("unknown log level %q (want none, ops, diag or trace)", level)
	}
}
