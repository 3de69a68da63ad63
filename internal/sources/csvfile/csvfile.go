// Package csvfile reads a delimited ledger file from disk.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/sources"
)

// Encodings understood by the source.
const (
	EncodingAuto   = "auto"
	EncodingLatin1 = "latin-1"
	EncodingUTF8   = "utf-8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var _ sources.RowSource = (*Source)(nil)

// Source reads rows from a delimited file. The first record is the header.
type Source struct {
	path      string
	delimiter rune
	encoding  string
	logger    *log.Logger
}

// Option configures a Source.
type Option func(*Source)

// WithDelimiter sets the field delimiter. The default is ';'.
func WithDelimiter(r rune) Option {
	return func(s *Source) { s.delimiter = r }
}

// WithEncoding selects EncodingAuto, EncodingLatin1 or EncodingUTF8.
func WithEncoding(enc string) Option {
	return func(s *Source) { s.encoding = strings.ToLower(strings.TrimSpace(enc)) }
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Source) { s.logger = l.WithComponent(log.ComponentSource) }
}

func New(path string, opts ...Option) *Source {
	s := &Source{
		path:      path,
		delimiter: ';',
		encoding:  EncodingAuto,
		logger:    log.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) Name() string {
	return "csv:" + s.path
}

// Rows reads and decodes the whole file.
func (s *Source) Rows(ctx context.Context) ([]core.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", core.ErrSourceUnavailable, s.path, err)
	}

	data, enc, err := decode(raw, s.encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", core.ErrSourceUnavailable, s.path, err)
	}

	header, records, err := readAll(data, s.delimiter)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", core.ErrSourceUnavailable, s.path, err)
	}

	rows := sources.RowsFromTable(header, records)
	s.logger.DebugContext(ctx, "Ledger file read",
		log.FieldPath, s.path,
		log.FieldEncoding, enc,
		log.FieldRows, len(rows))
	return rows, nil
}

// decode strips a UTF-8 byte order mark and converts latin-1 input to UTF-8.
// In auto mode input is latin-1 unless it is valid UTF-8.
func decode(raw []byte, encoding string) ([]byte, string, error) {
	switch encoding {
	case EncodingUTF8:
		return bytes.TrimPrefix(raw, utf8BOM), EncodingUTF8, nil
	case EncodingLatin1:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		return out, EncodingLatin1, err
	case EncodingAuto, "":
		if bytes.HasPrefix(raw, utf8BOM) {
			return raw[len(utf8BOM):], EncodingUTF8, nil
		}
		if utf8.Valid(raw) {
			return raw, EncodingUTF8, nil
		}
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		return out, EncodingLatin1, err
	default:
		return nil, "", errors.New("unsupported encoding " + encoding)
	}
}

func readAll(data []byte, delimiter rune) ([]string, [][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		records = append(records, rec)
	}
	return header, records, nil
}
