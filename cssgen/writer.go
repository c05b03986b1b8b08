package cssgen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrOutputTooLarge is returned when generated stylesheet exceeds configured
// size limit.
var ErrOutputTooLarge = errors.New("generated stylesheet exceeds size limit")

// writer accumulates output of a single generation pass. After the first
// failure every further write is refused and the error is kept.
type writer struct {
	buf   bytes.Buffer
	limit int
	err   error
}

func (w *writer) write(s string) {
	if w.err != nil {
		return
	}
	if w.limit > 0 && w.buf.Len()+len(s) > w.limit {
		w.err = fmt.Errorf("%w (%d bytes)", ErrOutputTooLarge, w.limit)
		return
	}
	w.buf.WriteString(s)
}

func (w *writer) printf(format string, args ...any) {
	w.write(fmt.Sprintf(format, args...))
}

// prop writes single declaration at given nesting depth.
func (w *writer) prop(depth int, name, value string) {
	for range depth {
		w.write("  ")
	}
	w.write(name + ": " + value + ";\n")
}

func (w *writer) mark() int {
	return w.buf.Len()
}

// rollback drops everything written after mark.
func (w *writer) rollback(mark int) {
	if w.err != nil || mark > w.buf.Len() {
		return
	}
	w.buf.Truncate(mark)
}

func (w *writer) String() string {
	return w.buf.String()
}

// WriteTo flushes accumulated output, refusing to do so when pass failed.
func (w *writer) WriteTo(dst io.Writer) (int64, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := dst.Write(w.buf.Bytes())
	return int64(n), err
}
