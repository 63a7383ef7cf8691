package model

import "sheetparse/internal/tabular"

// Envelope is the body returned for every parse request, success or failure.
// Result is nil on failure; Error is empty on success.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Method  string `json:"method"`
	*Result
}

// Result carries the extracted content of a successful parse.
// Exactly one of Workbook and Table is set.
type Result struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Filename   string  `json:"filename"`
	FileType   string  `json:"file_type"`
	*Workbook
	*Table
	TextLength int `json:"textLength"`
}

// Workbook is the per-sheet payload of a spreadsheet parse.
type Workbook struct {
	SheetsCount int                  `json:"sheets_count"`
	SheetsData  map[string]SheetData `json:"sheets_data"`
}

// Table is the single-table payload of a CSV parse.
type Table struct {
	Headers   []string         `json:"headers"`
	Rows      [][]tabular.Cell `json:"rows"`
	RowsCount int              `json:"rows_count"`
}

// SheetData is one sheet's structured content.
type SheetData struct {
	Headers []string         `json:"headers"`
	Rows    [][]tabular.Cell `json:"rows"`
	Shape   [2]int           `json:"shape"`
}
