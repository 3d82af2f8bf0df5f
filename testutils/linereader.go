package testutils

import (
	"fmt"
	"io"
)

// LineReader is an io.Reader producing Count lines of the form Prefix followed by the line number, each ending in a newline.
type LineReader struct {
	Prefix string
	Count  int
	line   int
	next   []byte
}

// Read fills p with as many whole or partial lines as fit.
func (r *LineReader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if len(r.next) == 0 {
			if r.line >= r.Count {
				err = io.EOF
				return
			}
			r.next = []byte(fmt.Sprintf("%s%d\n", r.Prefix, r.line))
			r.line++
		}

		c := copy(p[n:], r.next)
		n += c
		r.next = r.next[c:]
	}
	return
}
