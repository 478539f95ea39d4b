package core

// streaming.go cleans a CSV payload on the fly before it reaches encoding/csv.
//
// Spreadsheet exports commonly start with a UTF-8 BOM, and hand-edited files
// sometimes carry Latin-1 bytes. Both are fixed while streaming:
//
//   - the BOM (0xEF 0xBB 0xBF) is dropped when it opens the payload
//   - invalid UTF-8 bytes are replaced with U+FFFD
//   - reading stops with ErrPayloadTooLarge past the configured limit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrPayloadTooLarge is returned when a payload exceeds the configured byte limit.
var ErrPayloadTooLarge = errors.New("payload too large")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CleanReader strips a leading BOM and replaces invalid UTF-8 with U+FFFD.
type CleanReader struct {
	br      *bufio.Reader
	started bool
	pending []byte // encoded rune that did not fit in the caller's buffer
	scratch [utf8.UTFMax]byte
}

// NewCleanReader wraps r.
func NewCleanReader(r io.Reader) *CleanReader {
	return &CleanReader{br: bufio.NewReader(r)}
}

// Read implements io.Reader.
func (c *CleanReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if !c.started {
		c.started = true
		if head, err := c.br.Peek(len(utf8BOM)); err == nil && string(head) == string(utf8BOM) {
			c.br.Discard(len(utf8BOM))
		}
	}

	n := copy(p, c.pending)
	c.pending = c.pending[n:]

	for n < len(p) {
		r, _, err := c.br.ReadRune()
		if err != nil {
			if n > 0 && err == io.EOF {
				return n, nil
			}
			return n, err
		}

		// Invalid bytes come back as RuneError with size 1 and are
		// re-encoded as a full U+FFFD.
		w := utf8.EncodeRune(c.scratch[:], r)
		copied := copy(p[n:], c.scratch[:w])
		n += copied
		if copied < w {
			c.pending = append(c.pending[:0], c.scratch[copied:w]...)
			break
		}
	}

	return n, nil
}

// LimitedReader returns ErrPayloadTooLarge once more than Max bytes were read.
// A Max of zero or less disables the limit.
type LimitedReader struct {
	R    io.Reader
	Max  int64
	read int64
}

// Read implements io.Reader.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Max <= 0 {
		return l.R.Read(p)
	}
	if l.read > l.Max {
		return 0, fmt.Errorf("%w: more than %d bytes", ErrPayloadTooLarge, l.Max)
	}

	// Allow one byte past the limit so an exact-size payload still succeeds.
	if remaining := l.Max - l.read + 1; int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := l.R.Read(p)
	l.read += int64(n)
	if l.read > l.Max {
		return n, fmt.Errorf("%w: more than %d bytes", ErrPayloadTooLarge, l.Max)
	}
	return n, err
}
