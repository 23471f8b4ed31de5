package pemutil

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedPEM is returned when a PEM text has no BEGIN marker or its body is not valid Base64.
var ErrMalformedPEM = errors.New("malformed PEM")

const pemLineWidth = 64

var (
	beginMarker = regexp.MustCompile(`-----BEGIN ([^-]+)-----`)
	endMarker   = regexp.MustCompile(`-----END [^-]+-----`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Label returns the trimmed label of the first BEGIN marker, or an empty string when none is present.
func Label(text string) string {
	m := beginMarker.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// DecodePEM extracts the label of the first BEGIN marker and the Base64-decoded body.
// All BEGIN/END lines and all whitespace are removed before decoding.
func DecodePEM(text string) (string, []byte, error) {
	m := beginMarker.FindStringSubmatch(text)
	if m == nil {
		return "", nil, fmt.Errorf("%w: no -----BEGIN marker found", ErrMalformedPEM)
	}
	label := strings.TrimSpace(m[1])

	body := beginMarker.ReplaceAllString(text, "")
	body = endMarker.ReplaceAllString(body, "")
	body = whitespace.ReplaceAllString(body, "")

	der, err := decodeStd(body)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s body: %v", ErrMalformedPEM, label, err)
	}
	return label, der, nil
}

// EncodePEM armors der under label. Unless singleLine is set the Base64
// payload is wrapped at 64 characters per line.
func EncodePEM(label string, der []byte, singleLine bool) string {
	payload := EncodeBase64(der)
	if !singleLine {
		payload = wrap(payload, pemLineWidth)
	}
	return fmt.Sprintf("-----BEGIN %s-----\n%s\n-----END %s-----", label, payload, label)
}

func wrap(s string, width int) string {
	if len(s) <= width {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/width)
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteByte('\n')
		s = s[width:]
	}
	b.WriteString(s)
	return b.String()
}
