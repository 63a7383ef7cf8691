package tabular

import (
	"errors"
	"fmt"

	"sheetparse/internal/format"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrContainerOpen     = errors.New("cannot open workbook")
	ErrSheetRead         = errors.New("cannot read sheet")
	ErrEncoding          = errors.New("invalid utf-8 encoding")
	ErrCSVParse          = errors.New("malformed csv")
)

// Workbook is an opened spreadsheet container.
type Workbook interface {
	// SheetNames lists sheets in workbook order. A workbook without sheets
	// returns an empty slice.
	SheetNames() []string
	// ReadSheet returns the named sheet as a table. Errors wrap ErrSheetRead.
	ReadSheet(name string) (*Table, error)
	Close() error
}

// Engine opens a byte buffer as a Workbook.
type Engine func(data []byte) (Workbook, error)

var engines = map[format.Format]Engine{
	format.XLSX: openXLSX,
	format.XLS:  openXLS,
}

// Open selects the engine for f and opens data with it. Unrecognized
// formats fail with ErrUnsupportedFormat before any engine runs.
func Open(data []byte, f format.Format) (Workbook, error) {
	open, ok := engines[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	wb, err := open(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContainerOpen, err)
	}
	return wb, nil
}
