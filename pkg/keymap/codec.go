package keymap

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/rkm/pkg/fileutil"
)

// maxLineLength bounds a single keymap line. Custom actions with hundreds of
// steps are the longest lines seen in practice.
const maxLineLength = 1 << 20

// skippedTextLimit caps SkippedLine.Text for lines over maxLineLength.
const skippedTextLimit = 256

// SkippedLine is a line Load could not parse.
type SkippedLine struct {
	// Number is the 1-based line number.
	Number int
	// Text is the raw line without its line ending, cut short for lines over
	// the length limit.
	Text string
	Err  *ParseError
}

// Report describes what Load did with each line of its input.
type Report struct {
	// Lines is the number of lines read.
	Lines int
	// Ignored counts blank and comment-only lines.
	Ignored int
	// Skipped lists lines that failed to parse, in input order.
	Skipped []SkippedLine
}

// Parsed returns the number of lines that produced an entry.
func (r *Report) Parsed() int {
	return r.Lines - r.Ignored - len(r.Skipped)
}

// HasSkipped reports whether any line was dropped.
func (r *Report) HasSkipped() bool {
	return len(r.Skipped) > 0
}

// SkippedByKind groups skipped lines by ParseError.Kind.
func (r *Report) SkippedByKind() map[string]int {
	out := make(map[string]int)
	for _, s := range r.Skipped {
		out[s.Err.Kind()]++
	}
	return out
}

type loadOptions struct {
	logger *slog.Logger
}

// LoadOption configures Load and LoadFile.
type LoadOption func(*loadOptions)

// WithLogger logs each skipped line at debug level.
func WithLogger(l *slog.Logger) LoadOption {
	return func(o *loadOptions) {
		o.logger = l
	}
}

// Load reads keymap lines from r. Lines that fail to parse are left out of
// the list and recorded in the report; only read errors fail the call. A
// source where every line is skipped yields an empty list and a nil error.
func Load(r io.Reader, opts ...LoadOption) (List, *Report, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	var (
		list   List
		report = &Report{}
	)
	br := bufio.NewReader(r)
	for {
		raw, tooLong, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(err, "reading keymap")
		}
		report.Lines++
		text := strings.TrimSuffix(string(raw), "\r")
		if report.Lines == 1 {
			text = strings.TrimPrefix(text, "\uFEFF")
		}

		var e Entry
		if tooLong {
			err = &ParseError{Tag: lineTag, Field: "line", Err: ErrLineTooLong}
		} else {
			trimmed := strings.TrimSpace(text)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				report.Ignored++
				continue
			}
			e, err = ParseLine(trimmed)
		}
		if err != nil {
			var pe *ParseError
			if !errors.As(err, &pe) {
				pe = &ParseError{Tag: lineTag, Field: "line", Err: ErrInvalidTag, Cause: err}
			}
			report.Skipped = append(report.Skipped, SkippedLine{Number: report.Lines, Text: text, Err: pe})
			if o.logger != nil {
				o.logger.Debug("skipping keymap line",
					"line", report.Lines,
					"kind", pe.Kind(),
					"error", pe,
				)
			}
			continue
		}
		list = append(list, e)
	}
	return list, report, nil
}

// readLine returns the next line without its '\n'. Lines longer than
// maxLineLength are consumed to the end and returned truncated with tooLong
// set. io.EOF is returned only when no bytes are left.
func readLine(br *bufio.Reader) (line []byte, tooLong bool, err error) {
	started := false
	for {
		chunk, more, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && started {
				return line, tooLong, nil
			}
			return nil, false, err
		}
		started = true
		if !tooLong {
			line = append(line, chunk...)
			if len(line) > maxLineLength {
				tooLong = true
				line = line[:skippedTextLimit]
			}
		}
		if !more {
			return line, tooLong, nil
		}
	}
}

// Save writes one line per entry, each followed by '\n'. Entries are
// validated first so nothing is written for an invalid list.
func Save(w io.Writer, list List) error {
	if err := list.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, e := range list {
		if _, err := bw.WriteString(FormatLine(e)); err != nil {
			return errors.Wrap(err, "writing keymap")
		}
		if err := bw.WriteByte('\n'); err != nil {
			return errors.Wrap(err, "writing keymap")
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "writing keymap")
	}
	return nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string, opts ...LoadOption) (List, *Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening keymap %s", path)
	}
	defer f.Close()

	list, report, err := Load(f, opts...)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "loading %s", path)
	}
	return list, report, nil
}

// SaveFile writes list to path atomically. The existing file, if any, is
// replaced only after every line has been written and keeps its permissions.
func SaveFile(path string, list List) error {
	if err := list.Validate(); err != nil {
		return err
	}
	perm := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}
	err := fileutil.AtomicWriteFunc(path, perm, func(w io.Writer) error {
		return Save(w, list)
	})
	if err != nil {
		return errors.Wrapf(err, "saving keymap %s", path)
	}
	return nil
}
