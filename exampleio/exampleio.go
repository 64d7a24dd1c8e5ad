// Package exampleio writes example records for a classifier.
//
// Two formats are supported: SVM-light lines ("class fid:w fid:w # id")
// with ascending feature ids, and JSON lines carrying the full record
// including its extra attributes.
package exampleio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/lrxzhy/TEES/example"
)

// Output formats.
const (
	FormatSVMLight = "svmlight"
	FormatJSONL    = "jsonl"
)

// ErrUnknownFormat is returned by New for an unsupported format name.
var ErrUnknownFormat = errors.New("exampleio: unknown format")

// json sorts map keys, so feature maps serialize deterministically.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Writer serializes records one at a time.
type Writer interface {
	Write(r example.Record) error
	Flush() error
}

// New returns a writer for format.
func New(format string, w io.Writer) (Writer, error) {
	switch format {
	case FormatSVMLight, "":
		return NewSVMLightWriter(w), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteAll writes records in order and flushes.
func WriteAll(w Writer, records []example.Record) error {
	for _, r := range records {
		if err := w.Write(r); err != nil {
			return fmt.Errorf("write %s: %w", r.ID, err)
		}
	}

	return w.Flush()
}

// SVMLightWriter writes "class fid:weight ... # id" lines.
type SVMLightWriter struct {
	w *bufio.Writer
}

// NewSVMLightWriter wraps w in a buffered SVM-light writer.
func NewSVMLightWriter(w io.Writer) *SVMLightWriter {
	return &SVMLightWriter{w: bufio.NewWriter(w)}
}

// Write emits one line.
func (s *SVMLightWriter) Write(r example.Record) error {
	buf := make([]byte, 0, 16+12*len(r.Features))
	buf = strconv.AppendInt(buf, int64(r.Class), 10)
	for _, id := range r.Features.IDs() {
		buf = append(buf, ' ')
		buf = strconv.AppendInt(buf, int64(id), 10)
		buf = append(buf, ':')
		buf = strconv.AppendFloat(buf, r.Features[id], 'g', -1, 64)
	}
	buf = append(buf, " # "...)
	buf = append(buf, r.ID...)
	buf = append(buf, '\n')
	_, err := s.w.Write(buf)

	return err
}

// Flush writes buffered data to the underlying writer.
func (s *SVMLightWriter) Flush() error { return s.w.Flush() }

// JSONLWriter writes one JSON object per record.
type JSONLWriter struct {
	w   *bufio.Writer
	enc *jsoniter.Encoder
}

// NewJSONLWriter wraps w in a buffered JSON-lines writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	bw := bufio.NewWriter(w)

	return &JSONLWriter{w: bw, enc: json.NewEncoder(bw)}
}

// Write emits one line.
func (j *JSONLWriter) Write(r example.Record) error {
	return j.enc.Encode(r)
}

// Flush writes buffered data to the underlying writer.
func (j *JSONLWriter) Flush() error { return j.w.Flush() }

// maxLineSize bounds one JSON line; long sentences carry many features.
const maxLineSize = 16 << 20

// ReadJSONL decodes records written by JSONLWriter. Blank lines are skipped.
func ReadJSONL(r io.Reader) ([]example.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var out []example.Record
	for line := 1; sc.Scan(); line++ {
		data := bytes.TrimSpace(sc.Bytes())
		if len(data) == 0 {
			continue
		}
		var rec example.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("exampleio: decode line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("exampleio: read records: %w", err)
	}

	return out, nil
}
