package canonical

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// object keeps members in first-seen order. A repeated key keeps its first
// position and takes the last value.
type object = orderedmap.OrderedMap[string, any]

// MinifyJSON strictly parses text and re-serializes it without insignificant
// whitespace. Strings are re-escaped minimally and numbers are rendered in
// their shortest round-trip form, so `1.50` becomes `1.5` and `1E3` becomes
// `1000`.
func MinifyJSON(text string) (string, error) {
	value, err := parseJSON(text)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := writeValue(&b, value); err != nil {
		return "", fmt.Errorf("%w: %v", signing.ErrInvalidJSON, err)
	}
	return b.String(), nil
}

// CanonicalizeJCS returns the RFC 8785 canonical form of text.
func CanonicalizeJCS(text string) (string, error) {
	if !json.Valid([]byte(text)) {
		return "", fmt.Errorf("%w: payload does not parse", signing.ErrInvalidJSON)
	}
	out, err := jsoncanonicalizer.Transform([]byte(text))
	if err != nil {
		return "", fmt.Errorf("%w: %v", signing.ErrInvalidJSON, err)
	}
	return string(out), nil
}

func parseJSON(text string) (any, error) {
	// Valid rejects comments, trailing commas and trailing data up front.
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("%w: payload does not parse", signing.ErrInvalidJSON)
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	tr := &tokenReader{dec: dec, text: text}

	value, err := decodeValue(tr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", signing.ErrInvalidJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after value", signing.ErrInvalidJSON)
	}
	return value, nil
}

// tokenReader re-reads string tokens from the source text because the
// decoder replaces lone surrogate escapes with U+FFFD.
type tokenReader struct {
	dec  *json.Decoder
	text string
}

func (r *tokenReader) More() bool {
	return r.dec.More()
}

func (r *tokenReader) Token() (json.Token, error) {
	start := r.dec.InputOffset()
	tok, err := r.dec.Token()
	if err != nil {
		return nil, err
	}
	if _, ok := tok.(string); ok {
		// Only whitespace and separators precede the opening quote.
		raw := strings.TrimLeft(r.text[start:r.dec.InputOffset()], " \t\r\n,:")
		return unquote(raw)
	}
	return tok, nil
}

func decodeValue(dec *tokenReader) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := orderedmap.New[string, any]()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v is not a string", keyTok)
			}
			member, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, member)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			elem, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, elem)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

func writeValue(b *strings.Builder, value any) error {
	switch v := value.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case string:
		writeString(b, v)
	case json.Number:
		num, err := formatNumber(v)
		if err != nil {
			return err
		}
		b.WriteString(num)
	case []any:
		b.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeValue(b, elem); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case *object:
		b.WriteByte('{')
		first := true
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				b.WriteByte(',')
			}
			first = false
			writeString(b, pair.Key)
			b.WriteByte(':')
			if err := writeValue(b, pair.Value); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	default:
		return fmt.Errorf("unsupported JSON value %T", value)
	}
	return nil
}

// formatNumber renders n the way an ES6 serializer does. Literals beyond
// float64 range overflow to infinity, which serializes as null.
func formatNumber(n json.Number) (string, error) {
	f, err := strconv.ParseFloat(n.String(), 64)
	if math.IsInf(f, 0) {
		return "null", nil
	}
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return "", err
	}
	return jsoncanonicalizer.NumberToJSON(f)
}

const hexDigits = "0123456789abcdef"

func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); {
		if u, ok := loneSurrogateAt(s, i); ok {
			writeUnicodeEscape(b, u)
			i += 3
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				writeUnicodeEscape(b, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

func writeUnicodeEscape(b *strings.Builder, r rune) {
	b.WriteString(`\u`)
	for shift := 12; shift >= 0; shift -= 4 {
		b.WriteByte(hexDigits[(r>>shift)&0xf])
	}
}

// Lone surrogates are kept inside decoded strings in their generalized UTF-8
// form (ED A0..BF 80..BF). Raw invalid input bytes never take that form
// because unquote replaces them with U+FFFD.
func appendLoneSurrogate(b *strings.Builder, u rune) {
	b.WriteByte(0xED)
	b.WriteByte(byte(0x80 | (u>>6)&0x3f))
	b.WriteByte(byte(0x80 | u&0x3f))
}

func loneSurrogateAt(s string, i int) (rune, bool) {
	if i+2 >= len(s) || s[i] != 0xED || s[i+1] < 0xA0 || s[i+1] > 0xBF || s[i+2] < 0x80 || s[i+2] > 0xBF {
		return 0, false
	}
	return 0xD000 | rune(s[i+1]&0x3f)<<6 | rune(s[i+2]&0x3f), true
}

// unquote decodes a JSON string literal already accepted by json.Valid.
// Paired surrogate escapes combine, lone ones are preserved.
func unquote(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", fmt.Errorf("malformed string token %q", raw)
	}
	body := raw[1 : len(raw)-1]

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		if body[i] != '\\' {
			r, size := utf8.DecodeRuneInString(body[i:])
			b.WriteRune(r)
			i += size
			continue
		}
		if i+1 >= len(body) {
			return "", fmt.Errorf("dangling escape in %q", raw)
		}

		esc := body[i+1]
		if esc != 'u' {
			switch esc {
			case '"', '\\', '/':
				b.WriteByte(esc)
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				return "", fmt.Errorf("invalid escape \\%c", esc)
			}
			i += 2
			continue
		}

		r1, err := hex4(body, i+2)
		if err != nil {
			return "", err
		}
		i += 6
		if !utf16.IsSurrogate(r1) {
			b.WriteRune(r1)
			continue
		}
		if r1 < 0xDC00 && i+1 < len(body) && body[i] == '\\' && body[i+1] == 'u' {
			if r2, err := hex4(body, i+2); err == nil && r2 >= 0xDC00 && r2 <= 0xDFFF {
				b.WriteRune(utf16.DecodeRune(r1, r2))
				i += 6
				continue
			}
		}
		appendLoneSurrogate(&b, r1)
	}
	return b.String(), nil
}

func hex4(s string, at int) (rune, error) {
	if at+4 > len(s) {
		return 0, fmt.Errorf("truncated unicode escape")
	}
	v, err := strconv.ParseUint(s[at:at+4], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid unicode escape %q", s[at:at+4])
	}
	return rune(v), nil
}
