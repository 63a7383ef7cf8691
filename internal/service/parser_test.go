package service

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sheetparse/internal/format"
	"sheetparse/internal/metrics"
	"sheetparse/internal/storage"
	storeMocks "sheetparse/internal/storage/mocks"
	"sheetparse/internal/tabular"
)

func buildWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"item", "qty"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"bolt", 4}))
	_, err := f.NewSheet("Notes")
	require.NoError(t, err)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// stubEngines replaces the extraction entry points for the duration of a test
// and counts how often they are invoked.
func stubEngines(t *testing.T, open func([]byte, format.Format) (tabular.Workbook, error)) *int {
	t.Helper()
	calls := 0
	origOpen, origCSV := openWorkbook, extractCSV
	t.Cleanup(func() { openWorkbook, extractCSV = origOpen, origCSV })

	openWorkbook = func(data []byte, f format.Format) (tabular.Workbook, error) {
		calls++
		if open != nil {
			return open(data, f)
		}
		return origOpen(data, f)
	}
	extractCSV = func(data []byte) (*tabular.Table, string, error) {
		calls++
		return origCSV(data)
	}
	return &calls
}

func TestParse_CSV(t *testing.T) {
	svc := NewParserService(nil, nil)

	env := svc.Parse(context.Background(), []byte("a,b\n1,2\n3,4"), "data.csv")

	require.True(t, env.Success)
	assert.Equal(t, MethodCSV, env.Method)
	assert.Equal(t, "csv", env.FileType)
	assert.Equal(t, "data.csv", env.Filename)
	assert.Equal(t, Confidence, env.Confidence)
	require.NotNil(t, env.Table)
	assert.Nil(t, env.Workbook)
	assert.Equal(t, []string{"a", "b"}, env.Headers)
	assert.Equal(t, 2, env.RowsCount)
	assert.Equal(t, [][]tabular.Cell{
		{tabular.NumberCell(1), tabular.NumberCell(2)},
		{tabular.NumberCell(3), tabular.NumberCell(4)},
	}, env.Rows)
	assert.Equal(t, "a  b\n1  2\n3  4", env.Text)
	assert.Equal(t, len(env.Text), env.TextLength)
}

func TestParse_Workbook_DetectedFormatWins(t *testing.T) {
	svc := NewParserService(nil, nil)

	for _, name := range []string{"report.xlsx", "renamed.XLS"} {
		t.Run(name, func(t *testing.T) {
			env := svc.Parse(context.Background(), buildWorkbook(t), name)

			require.True(t, env.Success, env.Error)
			assert.Equal(t, "EXCEL_PARSING_XLSX", env.Method)
			assert.Equal(t, "xlsx", env.FileType)
			assert.Equal(t, name, env.Filename)
			require.NotNil(t, env.Workbook)
			assert.Equal(t, 2, env.SheetsCount)
			require.Len(t, env.SheetsData, 2)

			sheet := env.SheetsData["Sheet1"]
			assert.Equal(t, []string{"item", "qty"}, sheet.Headers)
			assert.Equal(t, [2]int{1, 2}, sheet.Shape)

			notes := env.SheetsData["Notes"]
			assert.Equal(t, []string{}, notes.Headers)
			assert.Equal(t, [2]int{0, 0}, notes.Shape)

			assert.True(t, strings.HasPrefix(env.Text, "=== Sheet: Sheet1 ==="))
			assert.True(t, strings.HasSuffix(env.Text, "=== Sheet: Notes ==="))
		})
	}
}

func TestParse_UnsupportedExtension(t *testing.T) {
	calls := stubEngines(t, nil)
	svc := NewParserService(nil, nil)

	env := svc.Parse(context.Background(), buildWorkbook(t), "contract.docx")

	assert.False(t, env.Success)
	assert.Equal(t, MethodUnsupported, env.Method)
	assert.Equal(t, "unsupported file format: docx", env.Error)
	assert.Nil(t, env.Result)
	assert.Zero(t, *calls)
}

func TestParse_UnrecognizedSignature(t *testing.T) {
	calls := stubEngines(t, nil)
	svc := NewParserService(nil, nil)

	for _, data := range [][]byte{[]byte("name,qty\nbolt,4"), {0x50, 0x4b}, nil} {
		env := svc.Parse(context.Background(), data, "book.xlsx")

		assert.False(t, env.Success)
		assert.Equal(t, MethodDetectionError, env.Method)
		assert.Contains(t, env.Error, ".xlsx")
	}
	assert.Zero(t, *calls)
}

func TestParse_ContainerOpenError(t *testing.T) {
	svc := NewParserService(nil, nil)

	env := svc.Parse(context.Background(), []byte("PK\x03\x04 truncated"), "book.xlsx")

	assert.False(t, env.Success)
	assert.Equal(t, MethodExcelError, env.Method)
	assert.True(t, strings.HasPrefix(env.Error, "excel processing failed: "))
}

func TestParse_InvalidUTF8CSV(t *testing.T) {
	svc := NewParserService(nil, nil)

	env := svc.Parse(context.Background(), []byte{'a', '\n', 0xc3, 0x28}, "data.csv")

	assert.False(t, env.Success)
	assert.Equal(t, MethodCSVError, env.Method)
	assert.Contains(t, env.Error, "utf-8")
}

func TestParse_RecoversFromPanics(t *testing.T) {
	stubEngines(t, func([]byte, format.Format) (tabular.Workbook, error) {
		panic("engine exploded")
	})
	svc := NewParserService(nil, nil)

	env := svc.Parse(context.Background(), buildWorkbook(t), "book.xlsx")

	require.NotNil(t, env)
	assert.False(t, env.Success)
	assert.Equal(t, MethodExcelError, env.Method)
	assert.Equal(t, "unexpected error: engine exploded", env.Error)
}

func TestParse_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewExtraction(reg)
	require.NoError(t, err)
	svc := NewParserService(nil, m)

	env := svc.Parse(context.Background(), []byte("a\n1"), "data.csv")
	require.True(t, env.Success)

	env = svc.Parse(context.Background(), nil, "notes.txt")
	require.False(t, env.Success)

	n, err := testutil.GatherAndCount(reg, "spreadsheet_extractions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestParseBase64(t *testing.T) {
	svc := NewParserService(nil, nil)

	t.Run("decodes and parses", func(t *testing.T) {
		payload := base64.StdEncoding.EncodeToString(buildWorkbook(t))
		env := svc.ParseBase64(context.Background(), payload, "book.xlsx")
		require.True(t, env.Success, env.Error)
		assert.Equal(t, "EXCEL_PARSING_XLSX", env.Method)
	})

	t.Run("malformed payload", func(t *testing.T) {
		env := svc.ParseBase64(context.Background(), "%%%", "book.xlsx")
		assert.False(t, env.Success)
		assert.Equal(t, MethodExcelError, env.Method)
		assert.Contains(t, env.Error, ErrTransportDecode.Error())
	})
}

func TestParseObject(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		env := NewParserService(nil, nil).ParseObject(ctx, "uploads/data.csv", "")
		assert.False(t, env.Success)
		assert.Equal(t, MethodStorageError, env.Method)
		assert.Equal(t, storage.ErrNotConfigured.Error(), env.Error)
	})

	t.Run("fetches and parses", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Get", mock.Anything, "uploads/data.csv").
			Return(io.NopCloser(strings.NewReader("a,b\n1,2")), storage.ObjectInfo{Key: "uploads/data.csv"}, nil).Once()

		env := NewParserService(mStore, nil).ParseObject(ctx, "uploads/data.csv", "")

		require.True(t, env.Success, env.Error)
		assert.Equal(t, "data.csv", env.Filename)
		assert.Equal(t, 1, env.RowsCount)
		mStore.AssertExpectations(t)
	})

	t.Run("filename override", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Get", mock.Anything, "uploads/blob").
			Return(io.NopCloser(strings.NewReader("a\n1")), storage.ObjectInfo{}, nil).Once()

		env := NewParserService(mStore, nil).ParseObject(ctx, "uploads/blob", "export.csv")

		require.True(t, env.Success, env.Error)
		assert.Equal(t, "export.csv", env.Filename)
		mStore.AssertExpectations(t)
	})

	t.Run("storage error", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Get", mock.Anything, "missing.xlsx").
			Return(nil, storage.ObjectInfo{}, errors.New("no such key")).Once()

		env := NewParserService(mStore, nil).ParseObject(ctx, "missing.xlsx", "")

		assert.False(t, env.Success)
		assert.Equal(t, MethodStorageError, env.Method)
		assert.Contains(t, env.Error, "no such key")
		mStore.AssertExpectations(t)
	})
}

func TestInvalidRequest(t *testing.T) {
	env := InvalidRequest(errors.New("fileData is required"))
	assert.False(t, env.Success)
	assert.Equal(t, MethodInvalidRequest, env.Method)
	assert.Equal(t, "fileData is required", env.Error)
}
