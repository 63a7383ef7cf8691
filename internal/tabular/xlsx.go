package tabular

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type xlsxBook struct {
	f         *excelize.File
	date1904  bool
	dateStyle map[int]bool
}

func openXLSX(data []byte) (Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	b := &xlsxBook{f: f, dateStyle: map[int]bool{}}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		b.date1904 = *props.Date1904
	}
	return b, nil
}

func (b *xlsxBook) SheetNames() []string {
	names := b.f.GetSheetList()
	if names == nil {
		return []string{}
	}
	return names
}

func (b *xlsxBook) ReadSheet(name string) (t *Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w %q: %v", ErrSheetRead, name, r)
		}
	}()

	// Rows streams tokens and skips malformed XML silently, so decode the
	// worksheet once up front to surface corruption.
	if _, err := b.f.GetSheetDimension(name); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrSheetRead, name, err)
	}
	rows, err := b.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrSheetRead, name, err)
	}

	raw := make([][]Cell, len(rows))
	for r, row := range rows {
		raw[r] = make([]Cell, len(row))
		for c, v := range row {
			if v == "" {
				continue
			}
			cell, err := b.cell(name, c+1, r+1, v)
			if err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrSheetRead, name, err)
			}
			raw[r][c] = cell
		}
	}
	return NewTable(raw), nil
}

func (b *xlsxBook) Close() error {
	return b.f.Close()
}

func (b *xlsxBook) cell(sheet string, col, row int, raw string) (Cell, error) {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Cell{}, err
	}
	typ, err := b.f.GetCellType(sheet, axis)
	if err != nil {
		return Cell{}, err
	}

	switch typ {
	case excelize.CellTypeBool:
		return BoolCell(raw == "1" || strings.EqualFold(raw, "true")), nil
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return DateCell(t), nil
		}
		if t, err := time.Parse(dateJSONLayout, raw); err == nil {
			return DateCell(t), nil
		}
		return StringCell(raw), nil
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return StringCell(raw), nil
		}
		if b.isDate(sheet, axis) {
			if t, err := excelize.ExcelDateToTime(n, b.date1904); err == nil {
				return DateCell(t), nil
			}
		}
		return NumberCell(n), nil
	default:
		return StringCell(raw), nil
	}
}

func (b *xlsxBook) isDate(sheet, axis string) bool {
	idx, err := b.f.GetCellStyle(sheet, axis)
	if err != nil || idx == 0 {
		return false
	}
	if v, ok := b.dateStyle[idx]; ok {
		return v
	}
	style, err := b.f.GetStyle(idx)
	isDate := err == nil && dateNumFmt(style.NumFmt, style.CustomNumFmt)
	b.dateStyle[idx] = isDate
	return isDate
}

func dateNumFmt(id int, custom *string) bool {
	switch {
	case id >= 14 && id <= 22, id >= 27 && id <= 36, id >= 45 && id <= 47, id >= 50 && id <= 58:
		return true
	}
	if custom == nil {
		return false
	}
	return customDateFormat(*custom)
}

// customDateFormat reports whether a number format string contains date or
// time tokens outside quoted literals and bracketed sections.
func customDateFormat(code string) bool {
	var (
		quoted  bool
		bracket bool
	)
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case ch == '"':
			quoted = !quoted
		case quoted:
		case ch == '\\':
			i++
		case ch == '[':
			bracket = true
		case ch == ']':
			bracket = false
		case bracket:
		default:
			switch ch {
			case 'y', 'Y', 'd', 'D', 'h', 'H', 's', 'S', 'm', 'M':
				return true
			}
		}
	}
	return false
}
