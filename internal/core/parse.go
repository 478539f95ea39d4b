package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrRaggedRow is wrapped by a ParseError when a row has more fields than the header.
	ErrRaggedRow = errors.New("row has more fields than the header")

	// ErrUnterminatedQuote is wrapped by a ParseError when a quoted field is
	// still open at the end of the payload.
	ErrUnterminatedQuote = errors.New("quoted field not closed before end of payload")
)

// ParseDataset reads delimited text with a header row into a Dataset.
//
// Field names come from the header, trimmed of surrounding whitespace.
// Records keep source order. Rows shorter than the header leave their
// trailing fields absent; rows longer than the header are rejected.
// Every failure is returned as a *ParseError.
func ParseDataset(r io.Reader) (*Dataset, error) {
	quotes := &quoteTracker{r: NewCleanReader(r)}
	cr := csv.NewReader(quotes)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{Err: ErrEmptyPayload}
	}
	if err != nil {
		return nil, newParseError(err)
	}
	if err := quotes.check(); err != nil {
		return nil, err
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	ds := &Dataset{Columns: columns, Records: []Record{}}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, newParseError(err)
		}
		if err := quotes.check(); err != nil {
			return nil, err
		}

		if len(row) > len(columns) {
			line, _ := cr.FieldPos(0)
			return nil, &ParseError{
				Line: line,
				Err:  fmt.Errorf("%w: got %d, header has %d", ErrRaggedRow, len(row), len(columns)),
			}
		}

		ds.Records = append(ds.Records, NewRecord(columns, row))
	}

	return ds, nil
}

// newParseError wraps a csv or read error, keeping the line number when known.
func newParseError(err error) *ParseError {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return &ParseError{Err: err}
}

// Quote states of quoteTracker.
const (
	fieldStart = iota
	unquoted
	quoted
	quoteInQuoted // a quote inside a quoted field, meaning decided by the next byte
)

// quoteTracker follows the quoting of the bytes handed to csv.Reader, using
// the rules of its LazyQuotes mode. In that mode the reader accepts a quoted
// field that runs to the end of the payload and swallows every row after it.
type quoteTracker struct {
	r        io.Reader
	state    int
	line     int
	openLine int
	eof      bool
}

func (q *quoteTracker) Read(p []byte) (int, error) {
	n, err := q.r.Read(p)
	for _, b := range p[:n] {
		q.step(b)
	}
	if err == io.EOF {
		q.eof = true
	}
	return n, err
}

func (q *quoteTracker) step(b byte) {
	switch q.state {
	case fieldStart, unquoted:
		switch {
		case b == ',' || b == '\n':
			q.state = fieldStart
		case b == '"' && q.state == fieldStart:
			q.state = quoted
			q.openLine = q.line
		case b != '\r':
			q.state = unquoted
		}
	case quoted:
		if b == '"' {
			q.state = quoteInQuoted
		}
	case quoteInQuoted:
		switch b {
		case ',', '\n':
			q.state = fieldStart
		case '\r':
			// Wait for the \n of a \r\n line ending.
		default:
			// An escaped "" or, lazily, a bare quote: the field is still open.
			q.state = quoted
		}
	}
	if b == '\n' {
		q.line++
	}
}

// check reports a quoted field still open once the whole payload was read.
func (q *quoteTracker) check() error {
	if q.eof && q.state == quoted {
		return &ParseError{Line: q.openLine, Err: ErrUnterminatedQuote}
	}
	return nil
}
