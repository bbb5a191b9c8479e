// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// ErrInvalidEncoding reports source bytes that are not valid in the
// configured encoding.
var ErrInvalidEncoding = errors.New("invalid byte sequence")

var replacementChar = []byte("\uFFFD")

// LookupEncoding resolves an encoding label. Shift-JIS spellings map to
// japanese.ShiftJIS; UTF-8 strips a leading byte order mark; anything else
// is looked up by its WHATWG label.
func LookupEncoding(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch strings.ReplaceAll(key, "-", "_") {
	case "", "shift_jis", "shiftjis", "sjis", "cp932", "windows_31j":
		return japanese.ShiftJIS, nil
	case "utf_8", "utf8":
		return unicode.UTF8BOM, nil
	}
	enc, err := htmlindex.Get(key)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// ReadRows decodes r with enc and parses it as headerless CSV. Rows may
// differ in width; blank lines are skipped. Bytes that are invalid in enc
// fail the read with ErrInvalidEncoding.
func ReadRows(r io.Reader, enc encoding.Encoding) ([][]string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	text, err := decodeStrict(src, enc)
	if err != nil {
		return nil, fmt.Errorf("decoding CSV: %w", err)
	}

	cr := csv.NewReader(bytes.NewReader(text))
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	return rows, nil
}

// decodeStrict converts src to UTF-8. The x/text decoders substitute U+FFFD
// for undecodable input, so any replacement character not already present
// in src marks an invalid sequence.
func decodeStrict(src []byte, enc encoding.Encoding) ([]byte, error) {
	out, err := enc.NewDecoder().Bytes(src)
	if err != nil {
		return nil, err
	}
	if bytes.Count(out, replacementChar) <= bytes.Count(src, replacementChar) {
		return out, nil
	}
	if bytes.Contains(src, replacementChar) {
		return nil, ErrInvalidEncoding
	}
	line := 1 + bytes.Count(out[:bytes.Index(out, replacementChar)], []byte{'\n'})
	return nil, fmt.Errorf("line %d: %w", line, ErrInvalidEncoding)
}

// ReadFile opens path and returns its decoded rows.
func ReadFile(path string, enc encoding.Encoding) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadRows(f, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
