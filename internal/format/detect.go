package format

import (
	"bytes"
	"encoding/hex"
)

// Format is the container format of a spreadsheet payload.
type Format int

const (
	Unrecognized Format = iota
	XLSX
	XLS
)

// PrefixLen is the number of leading bytes inspected by Detect.
const PrefixLen = 8

var (
	zipLocalHeader  = []byte{0x50, 0x4b, 0x03, 0x04}
	zipEmptyArchive = []byte{0x50, 0x4b, 0x05, 0x06}
	compoundFile    = []byte{0xd0, 0xcf, 0x11, 0xe0}
)

func (f Format) String() string {
	switch f {
	case XLSX:
		return "xlsx"
	case XLS:
		return "xls"
	default:
		return "unrecognized"
	}
}

// Detection is the outcome of signature sniffing.
// Prefix holds the hex-encoded bytes that were inspected.
type Detection struct {
	Format Format
	Prefix string
}

// Detect classifies b by its magic number. The filename is never consulted.
func Detect(b []byte) Detection {
	prefix := b
	if len(prefix) > PrefixLen {
		prefix = prefix[:PrefixLen]
	}

	d := Detection{Format: Unrecognized, Prefix: hex.EncodeToString(prefix)}
	switch {
	case bytes.HasPrefix(prefix, zipLocalHeader), bytes.HasPrefix(prefix, zipEmptyArchive):
		d.Format = XLSX
	case bytes.HasPrefix(prefix, compoundFile):
		d.Format = XLS
	}
	return d
}
