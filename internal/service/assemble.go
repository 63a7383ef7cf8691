package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"sheetparse/internal/model"
	"sheetparse/internal/tabular"
)

// Confidence is the fixed trust level reported for every successful extraction.
const Confidence = 0.9

// Method tags reported in the envelope.
const (
	MethodCSV            = "CSV_PARSING"
	MethodExcelPrefix    = "EXCEL_PARSING_"
	MethodExcelError     = "EXCEL_PARSER_ERROR"
	MethodCSVError       = "CSV_PARSER_ERROR"
	MethodDetectionError = "FORMAT_DETECTION_ERROR"
	MethodUnsupported    = "UNSUPPORTED_FORMAT"
	MethodInvalidRequest = "INVALID_REQUEST"
	MethodStorageError   = "OBJECT_STORAGE_ERROR"
)

// Stage identifies where in the pipeline a failure happened.
type Stage int

const (
	StageInternal Stage = iota
	StageRequest
	StageTransport
	StageStorage
	StageUnsupported
	StageDetection
	StageExcel
	StageCSV
)

func (s Stage) method() string {
	switch s {
	case StageRequest:
		return MethodInvalidRequest
	case StageStorage:
		return MethodStorageError
	case StageUnsupported:
		return MethodUnsupported
	case StageDetection:
		return MethodDetectionError
	case StageCSV:
		return MethodCSVError
	default:
		// Transport and unexpected faults fall under the generic parser error.
		return MethodExcelError
	}
}

// Failure is a pipeline error tagged with the stage that produced it.
type Failure struct {
	Stage Stage
	Err   error
}

// Outcome is the result of running the extraction pipeline on one payload.
// Failure is set on error; otherwise Workbook (spreadsheets) or Table (CSV) is.
type Outcome struct {
	FileType string
	Text     string
	Workbook *tabular.Extraction
	Table    *tabular.Table
	Failure  *Failure
}

func failed(stage Stage, err error) Outcome {
	return Outcome{Failure: &Failure{Stage: stage, Err: err}}
}

// Assemble maps an outcome onto the outbound envelope. declaredExt is the
// extension taken from the filename; it only appears in error messages.
func Assemble(o Outcome, filename, declaredExt string) *model.Envelope {
	if f := o.Failure; f != nil {
		return &model.Envelope{
			Error:  failureMessage(f, declaredExt),
			Method: f.Stage.method(),
		}
	}

	res := &model.Result{
		Text:       o.Text,
		Confidence: Confidence,
		Filename:   filename,
		FileType:   o.FileType,
		TextLength: utf8.RuneCountInString(o.Text),
	}
	method := MethodCSV

	switch {
	case o.Workbook != nil:
		method = MethodExcelPrefix + strings.ToUpper(o.FileType)
		sheets := make(map[string]model.SheetData, len(o.Workbook.Sheets))
		for _, s := range o.Workbook.Sheets {
			sheets[s.Name] = model.SheetData{
				Headers: s.Table.Headers,
				Rows:    s.Table.Rows,
				Shape:   s.Table.Shape(),
			}
		}
		res.Workbook = &model.Workbook{
			SheetsCount: o.Workbook.SheetCount,
			SheetsData:  sheets,
		}
	case o.Table != nil:
		res.Table = &model.Table{
			Headers:   o.Table.Headers,
			Rows:      o.Table.Rows,
			RowsCount: len(o.Table.Rows),
		}
	}

	return &model.Envelope{Success: true, Method: method, Result: res}
}

func failureMessage(f *Failure, declaredExt string) string {
	switch f.Stage {
	case StageUnsupported:
		return fmt.Sprintf("unsupported file format: %s", declaredExt)
	case StageDetection:
		return fmt.Sprintf("cannot detect spreadsheet format of .%s file: %v", declaredExt, f.Err)
	case StageExcel:
		return fmt.Sprintf("excel processing failed: %v", f.Err)
	case StageCSV:
		return fmt.Sprintf("csv processing failed: %v", f.Err)
	case StageInternal:
		return fmt.Sprintf("unexpected error: %v", f.Err)
	default:
		return f.Err.Error()
	}
}
