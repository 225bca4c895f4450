package record

import (
	"errors"
	"iter"
	"strings"

	"record-loader/schema"
)

// Delimiter separates the fields of a line. Quoting is not supported: every
// comma starts a new field.
const Delimiter = ","

// ErrClosed is reported by cursors of a closed stream.
var ErrClosed = errors.New("record: stream closed")

// Stream produces one record per line of a buffered text. It does not parse
// anything until a cursor is advanced.
type Stream[T any] struct {
	schema    *schema.Schema[T]
	text      string
	skipFirst bool
	closed    bool
}

// OpenText opens a stream over text. When skipFirstLine is set, the first line
// is treated as a header and never parsed into a record.
func OpenText[T any](s *schema.Schema[T], text string, skipFirstLine bool) *Stream[T] {
	return &Stream[T]{
		schema:    s,
		text:      text,
		skipFirst: skipFirstLine,
	}
}

// Schema returns the schema records are populated with.
func (s *Stream[T]) Schema() *schema.Schema[T] {
	return s.schema
}

// Close releases the text. Cursors still open stop with ErrClosed. Close is
// idempotent.
func (s *Stream[T]) Close() error {
	s.closed = true
	s.text = ""

	return nil
}

// Cursor starts a new pass over the text from its first line, skipping the
// header again if requested.
func (s *Stream[T]) Cursor() *Cursor[T] {
	c := &Cursor[T]{stream: s}

	if s.closed {
		c.err = ErrClosed
		c.done = true

		return c
	}

	c.text = s.text
	if s.skipFirst {
		c.readLine()
	}

	return c
}

// All returns the records of a new pass. Every call restarts from the top.
// Leaving the range loop early releases the pass.
func (s *Stream[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		c := s.Cursor()
		defer c.Close()

		for c.Next() {
			if !yield(c.Record()) {
				return
			}
		}
	}
}

// Drain reads every remaining record of a new pass and closes the stream.
func Drain[T any](s *Stream[T]) ([]*T, error) {
	defer s.Close()

	c := s.Cursor()
	defer c.Close()

	var records []*T
	for c.Next() {
		records = append(records, c.Record())
	}

	return records, c.Err()
}

// Cursor is a single forward-only pass over a stream.
type Cursor[T any] struct {
	stream *Stream[T]
	text   string
	pos    int
	line   int
	fields []string
	record *T
	done   bool
	err    error
}

// Next parses the next line into a fresh record. It returns false once the
// text is exhausted, the cursor is closed or the stream was closed.
func (c *Cursor[T]) Next() bool {
	if c.done {
		return false
	}

	if c.stream.closed {
		c.err = ErrClosed
		c.finish()

		return false
	}

	line, ok := c.readLine()
	if !ok {
		c.finish()
		return false
	}

	c.fields = splitFields(c.fields[:0], line)
	c.record = c.stream.schema.Decode(c.fields)

	return true
}

// Record returns the record produced by the last successful Next.
func (c *Cursor[T]) Record() *T {
	return c.record
}

// Line returns the 1-based line number of the current record, header included.
func (c *Cursor[T]) Line() int {
	return c.line
}

// Done reports whether the pass is finished.
func (c *Cursor[T]) Done() bool {
	return c.done
}

// Err returns the error that stopped the pass, if any.
func (c *Cursor[T]) Err() error {
	return c.err
}

// Close ends the pass and drops its reference to the text.
func (c *Cursor[T]) Close() error {
	c.finish()
	return nil
}

func (c *Cursor[T]) finish() {
	c.done = true
	c.text = ""
	c.pos = 0
	c.fields = nil
	c.record = nil
}

// readLine returns the next line without its terminator. Lines end at "\n",
// "\r\n" or a lone "\r"; a terminator at the very end does not start another line.
func (c *Cursor[T]) readLine() (string, bool) {
	if c.pos >= len(c.text) {
		return "", false
	}

	c.line++

	rest := c.text[c.pos:]

	i := strings.IndexAny(rest, "\r\n")
	if i < 0 {
		c.pos = len(c.text)
		return rest, true
	}

	c.pos += i + 1
	if rest[i] == '\r' && i+1 < len(rest) && rest[i+1] == '\n' {
		c.pos++
	}

	return rest[:i], true
}

func splitFields(dst []string, line string) []string {
	for {
		field, rest, found := strings.Cut(line, Delimiter)
		dst = append(dst, field)

		if !found {
			return dst
		}

		line = rest
	}
}

// Header returns the cells of the first line of text, or nil for empty text.
func Header(text string) []string {
	c := Cursor[struct{}]{text: text}

	line, ok := c.readLine()
	if !ok {
		return nil
	}

	return splitFields(nil, line)
}
