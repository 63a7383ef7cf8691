package tabular

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
)

const (
	xlsCharset = "utf-8"
	// BIFF8 worksheets hold at most 256 columns.
	xlsMaxCols = 256
)

type xlsBook struct {
	names  []string
	sheets map[string]*xls.WorkSheet
	failed map[string]error
}

// openXLS loads every sheet eagerly: the BIFF reader only exposes a sheet's
// name after parsing it, so a sheet that cannot be parsed is recorded under a
// positional name and reported again from ReadSheet.
func openXLS(data []byte) (wb Workbook, err error) {
	defer func() {
		if r := recover(); r != nil {
			wb, err = nil, fmt.Errorf("xls reader: %v", r)
		}
	}()

	book, err := xls.OpenReader(bytes.NewReader(data), xlsCharset)
	if err != nil {
		return nil, err
	}

	n := book.NumSheets()
	loaded := make([]*xls.WorkSheet, n)
	errs := make([]error, n)
	taken := map[string]bool{}
	for i := 0; i < n; i++ {
		sheet, err := loadXLSSheet(book, i)
		switch {
		case err != nil:
			errs[i] = err
		case sheet == nil || sheet.Name == "":
			errs[i] = fmt.Errorf("sheet %d missing", i)
		default:
			loaded[i] = sheet
			taken[sheet.Name] = true
		}
	}

	b := &xlsBook{
		names:  make([]string, 0, n),
		sheets: map[string]*xls.WorkSheet{},
		failed: map[string]error{},
	}
	for i := 0; i < n; i++ {
		if sheet := loaded[i]; sheet != nil {
			b.names = append(b.names, sheet.Name)
			b.sheets[sheet.Name] = sheet
			continue
		}
		name := failedSheetName(i, taken)
		taken[name] = true
		b.names = append(b.names, name)
		b.failed[name] = errs[i]
	}
	return b, nil
}

// failedSheetName returns "Sheet<i+1>", suffixed until it no longer clashes
// with a name already in use.
func failedSheetName(i int, taken map[string]bool) string {
	name := fmt.Sprintf("Sheet%d", i+1)
	for n := 2; taken[name]; n++ {
		name = fmt.Sprintf("Sheet%d (%d)", i+1, n)
	}
	return name
}

func loadXLSSheet(book *xls.WorkBook, i int) (sheet *xls.WorkSheet, err error) {
	defer func() {
		if r := recover(); r != nil {
			sheet, err = nil, fmt.Errorf("xls reader: %v", r)
		}
	}()
	return book.GetSheet(i), nil
}

func (b *xlsBook) SheetNames() []string {
	return b.names
}

func (b *xlsBook) ReadSheet(name string) (t *Table, err error) {
	if err, ok := b.failed[name]; ok {
		return nil, fmt.Errorf("%w %q: %w", ErrSheetRead, name, err)
	}
	sheet, ok := b.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%w %q: no such sheet", ErrSheetRead, name)
	}

	defer func() {
		if r := recover(); r != nil {
			t, err = nil, fmt.Errorf("%w %q: %v", ErrSheetRead, name, r)
		}
	}()

	rows := make([]*xls.Row, int(sheet.MaxRow)+1)
	width := 0
	for i := range rows {
		if rows[i] = xlsRow(sheet, i); rows[i] != nil {
			width = max(width, rows[i].LastCol())
		}
	}
	if width == 0 {
		width = xlsMaxCols
	}

	records := make([][]string, len(rows))
	for i, row := range rows {
		if row == nil {
			continue
		}
		// Rows without a ROW record report no last column.
		last := row.LastCol()
		if last == 0 {
			last = width
		}
		cells := make([]string, last)
		for c := range cells {
			cells[c] = row.Col(c)
		}
		records[i] = trimTrailing(cells)
	}
	return newTableFromStrings(records), nil
}

// xlsRow returns row i, or nil when the sheet has no record for it. The
// reader dereferences missing rows, so the lookup has to recover.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

func (b *xlsBook) Close() error {
	return nil
}

func trimTrailing(cells []string) []string {
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return cells[:n]
}
