// Package debug has helpers producing human readable dumps for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indent = "  "

// TreeWriter accumulates indented lines of a tree dump.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes labeled text value, quoted so that control characters
// stay on a single line.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Attrs writes label followed by key=value pairs, pairs with empty values are
// omitted. Odd trailing key is ignored.
func (tw TreeWriter) Attrs(depth int, label string, kv ...string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	for i := 0; i+1 < len(kv); i += 2 {
		if len(kv[i+1]) == 0 {
			continue
		}
		tw.w.WriteByte(' ')
		tw.w.WriteString(kv[i])
		tw.w.WriteByte('=')
		tw.w.WriteString(kv[i+1])
	}
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(indent)
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
