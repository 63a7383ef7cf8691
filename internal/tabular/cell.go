package tabular

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind tags the variant held by a Cell.
type Kind int

const (
	Empty Kind = iota
	String
	Number
	Bool
	Date
)

const (
	dateJSONLayout = "2006-01-02T15:04:05"
	dateTextLayout = "2006-01-02 15:04:05"
	dayTextLayout  = "2006-01-02"
)

// Cell is a single spreadsheet value. Only the field matching Kind is meaningful.
type Cell struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
	Time time.Time
}

func StringCell(s string) Cell { return Cell{Kind: String, Str: s} }
func NumberCell(n float64) Cell { return Cell{Kind: Number, Num: n} }
func BoolCell(b bool) Cell { return Cell{Kind: Bool, Bool: b} }
func DateCell(t time.Time) Cell { return Cell{Kind: Date, Time: t} }
func (c Cell) IsEmpty() bool { return c.Kind == Empty }

// Text renders the cell for the combined plain-text output.
func (c Cell) Text() string {
	switch c.Kind {
	case String:
		return c.Str
	case Number:
		return formatNumber(c.Num)
	case Bool:
		return strconv.FormatBool(c.Bool)
	case Date:
		if c.Time.Hour() == 0 && c.Time.Minute() == 0 && c.Time.Second() == 0 {
			return c.Time.Format(dayTextLayout)
		}
		return c.Time.Format(dateTextLayout)
	default:
		return ""
	}
}

// MarshalJSON keeps the cell's type on the wire: numbers stay numbers,
// booleans stay booleans and empty cells become null.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case String:
		return json.Marshal(c.Str)
	case Number:
		if math.IsNaN(c.Num) || math.IsInf(c.Num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(c.Num)
	case Bool:
		return json.Marshal(c.Bool)
	case Date:
		return json.Marshal(c.Time.Format(dateJSONLayout))
	default:
		return []byte("null"), nil
	}
}

func formatNumber(n float64) string {
	if math.IsNaN(n) {
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// inferColumn converts the raw strings of one column into typed cells.
// A column is numeric when every non-empty value parses as a finite number,
// boolean when every non-empty value is true/false and a date column when
// every non-empty value is an RFC 3339 timestamp; otherwise it is text.
func inferColumn(values []string) []Cell {
	numeric, boolean, date, seen := true, true, true, false
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		seen = true
		if numeric {
			if _, ok := parseNumber(v); !ok {
				numeric = false
			}
		}
		if boolean {
			if _, ok := parseBool(v); !ok {
				boolean = false
			}
		}
		if date {
			if _, err := time.Parse(time.RFC3339, v); err != nil {
				date = false
			}
		}
	}

	out := make([]Cell, len(values))
	for i, v := range values {
		trimmed := strings.TrimSpace(v)
		switch {
		case trimmed == "":
			out[i] = Cell{}
		case seen && numeric:
			n, _ := parseNumber(trimmed)
			out[i] = NumberCell(n)
		case seen && boolean:
			b, _ := parseBool(trimmed)
			out[i] = BoolCell(b)
		case seen && date:
			t, _ := time.Parse(time.RFC3339, trimmed)
			out[i] = DateCell(t)
		default:
			out[i] = StringCell(v)
		}
	}
	return out
}

// parseNumber accepts finite decimal values only; words such as "inf" or
// "nan" stay text.
func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}
