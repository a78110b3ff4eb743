// Package source reads delimited records from a file or standard input.
package source

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"unicode/utf8"
)

// Stdin is the path that selects standard input instead of a file.
const Stdin = "-"

// DefaultDelimiter separates fields when no other delimiter is configured.
const DefaultDelimiter = ','

// Record is one row of input, split into fields.
type Record []string

// Options controls how records are read.
type Options struct {
	// Delimiter separates fields. Zero means DefaultDelimiter.
	Delimiter rune
	// Header discards the first record.
	Header bool
	// Logger receives debug output about skipped rows. Nil discards it.
	Logger *slog.Logger
}

// Source is an open input. Its records can be iterated once.
type Source struct {
	path     string
	r        io.Reader
	closer   io.Closer
	opts     Options
	consumed bool
	skipped  int
	err      error
}

// SourceError reports that an input could not be opened.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	cause := e.Err
	var pathErr *fs.PathError
	if errors.As(cause, &pathErr) {
		cause = pathErr.Err
	}
	return fmt.Sprintf("failed to open %s: %v", e.Path, cause)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Open opens path for reading. The path "-" reads from stdin, which is
// never closed by the Source.
func Open(path string, stdin io.Reader, opts Options) (*Source, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = DefaultDelimiter
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	if path == Stdin {
		if stdin == nil {
			return nil, &SourceError{Path: path, Err: errors.New("standard input is not available")}
		}
		return &Source{path: path, r: stdin, opts: opts}, nil
	}

	f, err := os.Open(path) //nolint:gosec // reading a user-selected file is the point
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	return &Source{path: path, r: f, closer: f, opts: opts}, nil
}

// Path returns the path the source was opened with.
func (s *Source) Path() string {
	return s.path
}

// Records returns the records of the input in order. Quotes inside an
// unquoted field are kept as text. Rows that are not valid UTF-8 are
// skipped. A read error ends the sequence and is kept for Err. The
// sequence yields nothing after its first use.
func (s *Source) Records() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		if s.consumed {
			return
		}
		s.consumed = true

		reader := csv.NewReader(skipBOM(s.r))
		reader.Comma = s.opts.Delimiter
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		headerPending := s.opts.Header
		for {
			fields, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				s.err = fmt.Errorf("reading %s: %w", s.path, err)
				return
			}
			if i := invalidField(fields); i >= 0 {
				line, _ := reader.FieldPos(i)
				s.skipped++
				s.opts.Logger.Debug("skipping malformed record",
					slog.String("path", s.path),
					slog.Int("line", line),
					slog.String("error", "invalid UTF-8"))
				continue
			}

			if headerPending {
				headerPending = false
				continue
			}

			if !yield(Record(fields)) {
				return
			}
		}
	}
}

// invalidField returns the index of the first field that is not valid
// UTF-8, or -1.
func invalidField(fields []string) int {
	for i, f := range fields {
		if !utf8.ValidString(f) {
			return i
		}
	}
	return -1
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM drops a leading UTF-8 byte order mark from r.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, _ := br.Peek(len(utf8BOM)); bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// Skipped returns the number of rows dropped as malformed.
func (s *Source) Skipped() int {
	return s.skipped
}

// Err returns the error that ended iteration early, if any.
func (s *Source) Err() error {
	return s.err
}

// Close releases the underlying file. It is safe to call more than once.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}
