package stack

import (
	"go.uber.org/zap"

	"github.com/stackguard/stackguard/sink"
)

// Package-wide diagnostic destinations. Operational one-liners go through
// the zap logger; dump reports go through the sink. Both discard by
// default so the container is silent until a caller opts in.
var (
	logger = zap.NewNop()
	diag   = sink.Discard
)

// SetLogger installs the logger used for operational failure notes.
// Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// SetSink installs the destination for diagnostic dump reports. Passing
// nil restores the discarding sink.
func SetSink(s sink.Sink) {
	if s == nil {
		s = sink.Discard
	}
	diag = s
}
