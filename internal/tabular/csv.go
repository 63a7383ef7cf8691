package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// ExtractCSV parses comma-separated UTF-8 text whose first row holds the
// headers. It returns the table and its plain-text rendering.
func ExtractCSV(data []byte) (*Table, string, error) {
	if !utf8.Valid(data) {
		return nil, "", fmt.Errorf("%w: input is not valid utf-8", ErrEncoding)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	var (
		records [][]string
		width   = -1
	)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrCSVParse, err)
		}
		if blankStrings(rec) {
			continue
		}
		if width < 0 {
			width = len(rec)
		} else if len(rec) > width {
			line, _ := r.FieldPos(0)
			return nil, "", fmt.Errorf("%w: expected %d fields on line %d, saw %d", ErrCSVParse, width, line, len(rec))
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, "", fmt.Errorf("%w: no columns to parse from file", ErrCSVParse)
	}

	t := newTableFromStrings(records)
	return t, Render(t), nil
}
