package pemutil

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedBase64 is returned when signature text cannot be Base64-decoded.
var ErrMalformedBase64 = errors.New("malformed base64")

var urlSafeToStd = strings.NewReplacer("-", "+", "_", "/")

// EncodeBase64 encodes b with the standard, padded alphabet.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// EncodeBase64URL encodes b with the URL-safe alphabet and no padding.
func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeBase64Tolerant decodes standard or URL-safe Base64, ignoring any
// whitespace and missing padding.
func DecodeBase64Tolerant(text string) ([]byte, error) {
	norm := whitespace.ReplaceAllString(text, "")
	norm = urlSafeToStd.Replace(norm)

	b, err := decodeStd(norm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBase64, err)
	}
	return b, nil
}

// WrapInThreeLines splits a Base64 string into three roughly equal lines.
// Whitespace already present is dropped first; empty lines are omitted.
func WrapInThreeLines(b64 string) string {
	clean := whitespace.ReplaceAllString(b64, "")
	n := (len(clean) + 2) / 3

	lines := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		start := min(i*n, len(clean))
		end := min(start+n, len(clean))
		if i == 2 {
			end = len(clean)
		}
		if start < end {
			lines = append(lines, clean[start:end])
		}
	}
	return strings.Join(lines, "\n")
}

// decodeStd decodes the standard alphabet and restores padding that was
// stripped in transit. A remainder of one character can never be valid.
func decodeStd(s string) ([]byte, error) {
	switch len(s) % 4 {
	case 1:
		return nil, errors.New("invalid length")
	case 2:
		s += "=="
	case 3:
		s += "="
	}
	return base64.StdEncoding.DecodeString(s)
}
