// Package sink defines the line-oriented diagnostic destination that the
// stack package writes failure notes and dump reports to.
//
// A Sink is append-only text output: single formatted lines, multi-line
// diagnostic blocks, and an explicit flush. Nothing is ever read back.
package sink

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Sink is an append-only, line-oriented text destination.
type Sink interface {
	// Logf appends one formatted line. A trailing newline is supplied if
	// the format does not end with one.
	Logf(format string, args ...any)

	// Block appends a multi-line diagnostic block verbatim.
	Block(s string)

	// Flush forces buffered output to the underlying destination.
	Flush() error
}

// Discard drops all output. It is the default destination.
var Discard Sink = discard{}

type discard struct{}

func (discard) Logf(string, ...any) {}
func (discard) Block(string)        {}
func (discard) Flush() error        { return nil }

// WriterSink buffers output on top of an io.Writer. Output reaches the
// writer on Flush, or when the internal buffer fills.
type WriterSink struct {
	w *bufio.Writer
}

// NewWriter returns a WriterSink writing to w.
func NewWriter(w io.Writer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w)}
}

func (s *WriterSink) Logf(format string, args ...any) {
	fmt.Fprintf(s.w, format, args...)
	if !strings.HasSuffix(format, "\n") {
		s.w.WriteByte('\n')
	}
}

func (s *WriterSink) Block(text string) {
	s.w.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		s.w.WriteByte('\n')
	}
}

func (s *WriterSink) Flush() error {
	return s.w.Flush()
}

// ZapSink routes output through a zap logger. Lines become Info entries,
// blocks become a single Info entry carrying the full report, and Flush
// delegates to Sync.
type ZapSink struct {
	l *zap.Logger
	s *zap.SugaredLogger
}

// NewZap returns a ZapSink writing through l.
func NewZap(l *zap.Logger) *ZapSink {
	return &ZapSink{l: l, s: l.Sugar()}
}

func (s *ZapSink) Logf(format string, args ...any) {
	s.s.Infof(strings.TrimSuffix(format, "\n"), args...)
}

func (s *ZapSink) Block(text string) {
	s.l.Info("diagnostic dump", zap.String("report", text))
}

func (s *ZapSink) Flush() error {
	return s.l.Sync()
}
