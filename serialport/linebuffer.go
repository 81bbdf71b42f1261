package serialport

import (
	"bytes"
	"strings"
)

// LineBuffer reassembles newline-delimited text from arbitrarily split
// chunks. The zero value is ready to use.
type LineBuffer struct {
	pending []byte
}

// Feed appends p and returns all complete lines now available, without
// their line endings. Carriage returns and surrounding whitespace are
// stripped; blank lines are dropped. An unterminated tail stays buffered
// until its newline arrives.
func (b *LineBuffer) Feed(p []byte) []string {
	b.pending = append(b.pending, p...)

	var lines []string
	for {
		i := bytes.IndexByte(b.pending, '\n')
		if i < 0 {
			return lines
		}

		line := strings.TrimSpace(string(b.pending[:i]))
		b.pending = b.pending[i+1:]
		if line != "" {
			lines = append(lines, line)
		}
	}
}
