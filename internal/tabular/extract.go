package tabular

import (
	"context"
	"strings"

	"sheetparse/internal/logger"
)

// SheetOutcome is the result of reading one sheet: either Sheet or Err is set.
type SheetOutcome struct {
	Name  string
	Sheet SheetResult
	Err   error
}

// SheetFailure records a sheet that was skipped.
type SheetFailure struct {
	Name string
	Err  error
}

// Extraction is the combined output of every readable sheet in a workbook.
type Extraction struct {
	Text       string
	Sheets     []SheetResult
	SheetCount int
	Failures   []SheetFailure
}

// ReadSheets reads every sheet in workbook order and returns one outcome per
// sheet. A failing sheet never stops the others from being read.
func ReadSheets(wb Workbook) []SheetOutcome {
	names := wb.SheetNames()
	out := make([]SheetOutcome, 0, len(names))
	for _, name := range names {
		t, err := wb.ReadSheet(name)
		out = append(out, SheetOutcome{
			Name:  name,
			Sheet: SheetResult{Name: name, Table: t},
			Err:   err,
		})
	}
	return out
}

// ExtractAll reads the workbook and keeps the sheets that succeeded.
func ExtractAll(ctx context.Context, wb Workbook) Extraction {
	outcomes := ReadSheets(wb)
	ext := Extraction{
		Sheets:     make([]SheetResult, 0, len(outcomes)),
		SheetCount: len(outcomes),
	}

	var b strings.Builder
	for _, o := range outcomes {
		if o.Err != nil {
			logger.WithContext(ctx).Warn("sheet skipped",
				"stage", "read_sheet",
				"sheet", o.Name,
				"error", o.Err,
			)
			ext.Failures = append(ext.Failures, SheetFailure{Name: o.Name, Err: o.Err})
			continue
		}
		b.WriteString("\n=== Sheet: ")
		b.WriteString(o.Name)
		b.WriteString(" ===\n")
		if text := Render(o.Sheet.Table); text != "" {
			b.WriteString(text)
			b.WriteByte('\n')
		}
		ext.Sheets = append(ext.Sheets, o.Sheet)
	}
	ext.Text = strings.TrimSpace(b.String())
	return ext
}
