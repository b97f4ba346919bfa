// Package textutil provides line oriented output helpers for the tally
// commands.
package textutil

import (
	"bytes"
	"fmt"
	"io"
)

// ErrWriter wraps a writer, keeping its first error; once Err is set, every
// later write is refused with it.
type ErrWriter struct {
	io.Writer
	Err error
}

// Write passes p through unless an earlier write failed.
func (ew *ErrWriter) Write(p []byte) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = ew.Writer.Write(p)
	}
	return n, ew.Err
}

// WriteString passes s through unless an earlier write failed.
func (ew *ErrWriter) WriteString(s string) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = io.WriteString(ew.Writer, s)
	}
	return n, ew.Err
}

// Printf formats to the underlying writer unless an earlier write failed.
func (ew *ErrWriter) Printf(format string, args ...any) {
	if ew.Err == nil {
		_, ew.Err = fmt.Fprintf(ew.Writer, format, args...)
	}
}

// LineWriter buffers writes, passing only complete lines through to To, each
// one preceded by Prefix.
type LineWriter struct {
	To     io.Writer
	Prefix string

	buf  bytes.Buffer
	line []byte
}

// Indent returns a LineWriter that prefixes every line written to w.
// The caller should Close it to flush any final partial line.
func Indent(w io.Writer, prefix string) *LineWriter {
	return &LineWriter{To: w, Prefix: prefix}
}

// Write buffers p, then writes every line that it completes.
func (lw *LineWriter) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			lw.line = append(lw.line, p...)
			break
		}
		lw.line = append(lw.line, p[:i+1]...)
		lw.emit()
		p = p[i+1:]
	}
	if err := lw.flushLines(); err != nil {
		return 0, err
	}
	return n, nil
}

func (lw *LineWriter) emit() {
	lw.buf.WriteString(lw.Prefix)
	lw.buf.Write(lw.line)
	lw.line = lw.line[:0]
}

func (lw *LineWriter) flushLines() error {
	if lw.buf.Len() == 0 {
		return nil
	}
	_, err := lw.buf.WriteTo(lw.To)
	return err
}

// Close writes any pending partial line, without adding a newline.
func (lw *LineWriter) Close() error {
	if len(lw.line) > 0 {
		lw.emit()
	}
	return lw.flushLines()
}

// WriteEach calls fn for every item, stopping at the first write error,
// which it returns.
func WriteEach[T any](to io.Writer, items []T, fn func(w *ErrWriter, item T)) error {
	ew, ok := to.(*ErrWriter)
	if !ok {
		ew = &ErrWriter{Writer: to}
	}
	for _, item := range items {
		if ew.Err != nil {
			break
		}
		fn(ew, item)
	}
	return ew.Err
}
