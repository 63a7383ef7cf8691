package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrTransportDecode is returned for payloads that are not valid base64.
var ErrTransportDecode = errors.New("invalid base64 payload")

// DecodePayload decodes standard base64, tolerating whitespace, missing
// padding and a leading data URL header ("data:<mime>;base64,").
func DecodePayload(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ";base64,"); i >= 0 {
			s = s[i+len(";base64,"):]
		}
	}
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimRight(s, "=")

	b, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransportDecode, err)
	}
	return b, nil
}

// DeclaredExtension returns the lower-cased text after the last dot of
// filename, or the whole lower-cased name when it has no dot.
func DeclaredExtension(filename string) string {
	name := strings.ToLower(filename)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
