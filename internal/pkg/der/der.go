package der

import (
	"errors"
	"fmt"
)

// Tag is an ASN.1 universal tag byte.
type Tag byte

// Universal tags used by the key containers.
const (
	TagInteger     Tag = 0x02
	TagBitString   Tag = 0x03
	TagOctetString Tag = 0x04
	TagNull        Tag = 0x05
	TagOID         Tag = 0x06
	TagSequence    Tag = 0x30
)

var (
	// ErrTruncated is returned when a node is shorter than its header declares.
	ErrTruncated = errors.New("der: truncated node")
	// ErrNonMinimalLength is returned for long-form lengths that are not minimally encoded.
	ErrNonMinimalLength = errors.New("der: non-minimal length encoding")
)

// rsaEncryption, 1.2.840.113549.1.1.1
var rsaEncryptionOID = []byte{0x06, 0x09, 0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x01}

// LengthPrefix encodes n as a DER length: a single byte below 128, otherwise
// 0x80|k followed by the k minimal big-endian bytes of n.
func LengthPrefix(n uint) []byte {
	if n < 0x80 {
		return []byte{byte(n)}
	}

	var be []byte
	for v := n; v > 0; v >>= 8 {
		be = append([]byte{byte(v)}, be...)
	}
	return append([]byte{0x80 | byte(len(be))}, be...)
}

// Node returns tag ++ length(content) ++ content.
func Node(tag Tag, content []byte) []byte {
	prefix := LengthPrefix(uint(len(content)))
	out := make([]byte, 0, 1+len(prefix)+len(content))
	out = append(out, byte(tag))
	out = append(out, prefix...)
	return append(out, content...)
}

// Sequence wraps the concatenation of parts in a SEQUENCE.
func Sequence(parts ...[]byte) []byte {
	var size int
	for _, p := range parts {
		size += len(p)
	}
	body := make([]byte, 0, size)
	for _, p := range parts {
		body = append(body, p...)
	}
	return Node(TagSequence, body)
}

// OctetString wraps b in an OCTET STRING.
func OctetString(b []byte) []byte {
	return Node(TagOctetString, b)
}

// BitString wraps b in a BIT STRING with zero unused bits.
func BitString(b []byte) []byte {
	body := make([]byte, 0, len(b)+1)
	body = append(body, 0x00)
	return Node(TagBitString, append(body, b...))
}

// IntegerZero returns the INTEGER 0 used as the PKCS#8 version.
func IntegerZero() []byte {
	return []byte{byte(TagInteger), 0x01, 0x00}
}

// Null returns an ASN.1 NULL.
func Null() []byte {
	return []byte{byte(TagNull), 0x00}
}

// RSAEncryptionOID returns the encoded OBJECT IDENTIFIER 1.2.840.113549.1.1.1.
func RSAEncryptionOID() []byte {
	return append([]byte(nil), rsaEncryptionOID...)
}

// RSAAlgorithmIdentifier returns SEQUENCE { rsaEncryption, NULL }.
func RSAAlgorithmIdentifier() []byte {
	return Sequence(rsaEncryptionOID, Null())
}

// ParseNode reads one node from the front of b and returns its tag, its
// content and whatever follows it.
func ParseNode(b []byte) (Tag, []byte, []byte, error) {
	if len(b) < 2 {
		return 0, nil, nil, ErrTruncated
	}
	tag := Tag(b[0])

	length, header, err := parseLength(b[1:])
	if err != nil {
		return 0, nil, nil, err
	}
	start := 1 + header
	if uint64(len(b)-start) < length {
		return 0, nil, nil, fmt.Errorf("%w: want %d content bytes, have %d", ErrTruncated, length, len(b)-start)
	}
	end := start + int(length)
	return tag, b[start:end], b[end:], nil
}

func parseLength(b []byte) (uint64, int, error) {
	first := b[0]
	if first < 0x80 {
		return uint64(first), 1, nil
	}

	k := int(first & 0x7f)
	if k == 0 || k > 8 {
		return 0, 0, fmt.Errorf("der: unsupported length octet count %d", k)
	}
	if len(b) < 1+k {
		return 0, 0, ErrTruncated
	}
	if b[1] == 0 {
		return 0, 0, ErrNonMinimalLength
	}

	var n uint64
	for _, octet := range b[1 : 1+k] {
		n = n<<8 | uint64(octet)
	}
	if n < 0x80 {
		return 0, 0, ErrNonMinimalLength
	}
	return n, 1 + k, nil
}
