//go:build unit
// +build unit

package der

import (
	"bytes"
	"encoding/asn1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLengthPrefix(t *testing.T) {
	tests := []struct {
		n        uint
		expected string
	}{
		{0, "00"},
		{1, "01"},
		{127, "7f"},
		{128, "8180"},
		{255, "81ff"},
		{256, "820100"},
		{65535, "82ffff"},
		{65536, "83010000"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, hex.EncodeToString(LengthPrefix(tt.n)))
		})
	}
}

func TestNodeLengthRoundTrip(t *testing.T) {
	for _, size := range []int{0, 127, 128, 255, 65536} {
		content := bytes.Repeat([]byte{0xa5}, size)
		node := Node(TagOctetString, content)

		tag, got, rest, err := ParseNode(node)
		require.NoError(t, err, "size %d", size)
		assert.Equal(t, TagOctetString, tag)
		assert.Len(t, got, size)
		assert.Equal(t, content, got)
		assert.Empty(t, rest)
	}
}

func TestFixedNodes(t *testing.T) {
	assert.Equal(t, "020100", hex.EncodeToString(IntegerZero()))
	assert.Equal(t, "0500", hex.EncodeToString(Null()))
	assert.Equal(t, "06092a864886f70d010101", hex.EncodeToString(RSAEncryptionOID()))

	var oid asn1.ObjectIdentifier
	_, err := asn1.Unmarshal(RSAEncryptionOID(), &oid)
	require.NoError(t, err)
	assert.True(t, oid.Equal(asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}))
}

func TestSequence(t *testing.T) {
	seq := Sequence(IntegerZero(), Null())
	assert.Equal(t, "3005020100"+"0500", hex.EncodeToString(seq))

	assert.Equal(t, "3000", hex.EncodeToString(Sequence()))
}

func TestBitString(t *testing.T) {
	assert.Equal(t, "030300abcd", hex.EncodeToString(BitString([]byte{0xab, 0xcd})))

	var bs asn1.BitString
	_, err := asn1.Unmarshal(BitString([]byte{0xab, 0xcd}), &bs)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xab, 0xcd}, bs.Bytes)
	assert.Equal(t, 16, bs.BitLength)
}

func TestOctetStringIsValidASN1(t *testing.T) {
	content := bytes.Repeat([]byte{0x01}, 300)

	var got []byte
	rest, err := asn1.Unmarshal(OctetString(content), &got)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, content, got)
}

func TestParseNode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{"empty", nil, ErrTruncated},
		{"short content", []byte{0x04, 0x03, 0x01}, ErrTruncated},
		{"short long-form header", []byte{0x04, 0x82, 0x01}, ErrTruncated},
		{"leading zero length octet", []byte{0x04, 0x82, 0x00, 0x80}, ErrNonMinimalLength},
		{"long form for short length", []byte{0x04, 0x81, 0x05, 1, 2, 3, 4, 5}, ErrNonMinimalLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := ParseNode(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseNode_Rest(t *testing.T) {
	buf := append(Null(), IntegerZero()...)

	tag, content, rest, err := ParseNode(buf)
	require.NoError(t, err)
	assert.Equal(t, TagNull, tag)
	assert.Empty(t, content)
	assert.Equal(t, IntegerZero(), rest)
}
