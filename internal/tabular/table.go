package tabular

import "strconv"

// Table is a header row plus data rows. Every row has len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]Cell
}

// SheetResult is a successfully read sheet.
type SheetResult struct {
	Name  string
	Table *Table
}

// Shape returns (data rows, columns).
func (t *Table) Shape() [2]int {
	return [2]int{len(t.Rows), len(t.Headers)}
}

// NewTable builds a table from raw rows whose first non-empty row holds the
// headers. Blank rows are dropped, blank header labels are named
// "Unnamed: <index>" and short rows are padded with empty cells.
func NewTable(raw [][]Cell) *Table {
	rows := make([][]Cell, 0, len(raw))
	for _, r := range raw {
		if !blankRow(r) {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return &Table{Headers: []string{}, Rows: [][]Cell{}}
	}

	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}

	headers := make([]string, width)
	for i := range headers {
		if i < len(rows[0]) && !rows[0][i].IsEmpty() {
			headers[i] = rows[0][i].Text()
			continue
		}
		headers[i] = "Unnamed: " + strconv.Itoa(i)
	}

	data := make([][]Cell, 0, len(rows)-1)
	for _, r := range rows[1:] {
		padded := make([]Cell, width)
		copy(padded, r)
		data = append(data, padded)
	}
	return &Table{Headers: headers, Rows: data}
}

// newTableFromStrings infers column types before building the table.
// The header row is kept as text.
func newTableFromStrings(records [][]string) *Table {
	width := 0
	for _, r := range records {
		width = max(width, len(r))
	}

	raw := make([][]Cell, len(records))
	for i, r := range records {
		raw[i] = make([]Cell, len(r))
	}

	first := -1
	for i, r := range records {
		if !blankStrings(r) {
			first = i
			break
		}
	}
	if first < 0 {
		return NewTable(nil)
	}
	for c, v := range records[first] {
		if v != "" {
			raw[first][c] = StringCell(v)
		}
	}

	column := make([]string, 0, len(records))
	for c := 0; c < width; c++ {
		column = column[:0]
		for _, r := range records[first+1:] {
			if c < len(r) {
				column = append(column, r[c])
			} else {
				column = append(column, "")
			}
		}
		typed := inferColumn(column)
		for i, r := range records[first+1:] {
			if c < len(r) {
				raw[first+1+i][c] = typed[i]
			}
		}
	}
	return NewTable(raw[first:])
}

func blankRow(r []Cell) bool {
	for _, c := range r {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

func blankStrings(r []string) bool {
	for _, s := range r {
		if s != "" {
			return false
		}
	}
	return true
}
