package keyformat

import (
	"fmt"
	"strings"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/MGTheTrain/request-signer/internal/pkg/der"
	"github.com/MGTheTrain/request-signer/internal/pkg/pemutil"
)

// Encoding is the container a key's DER bytes are in.
type Encoding string

// Supported encodings
const (
	EncodingPKCS1 Encoding = "pkcs1"
	EncodingPKCS8 Encoding = "pkcs8"
	EncodingSPKI  Encoding = "spki"
)

// KeyMaterial is decoded key text: the PEM label, the detected encoding and the raw DER.
type KeyMaterial struct {
	Encoding Encoding
	Label    string
	DER      []byte
}

// IsPKCS1 reports whether the DER still needs wrapping before import.
func (k *KeyMaterial) IsPKCS1() bool {
	return k.Encoding == EncodingPKCS1
}

// ClassifyPrivate maps a private key PEM label to its encoding. Only the
// unqualified "PRIVATE KEY" label is PKCS#8; algorithm specific labels such
// as "EC PRIVATE KEY" are unsupported.
func ClassifyPrivate(label string) (Encoding, error) {
	label = strings.TrimSpace(label)
	switch {
	case strings.Contains(label, signing.LabelRSAPrivateKey):
		return EncodingPKCS1, nil
	case label == signing.LabelPrivateKey:
		return EncodingPKCS8, nil
	default:
		return "", fmt.Errorf("%w: %q is not a private key label", signing.ErrUnsupportedKeyFormat, label)
	}
}

// ClassifyPublic maps a public key PEM label to its encoding using the same
// rule as ClassifyPrivate.
func ClassifyPublic(label string) (Encoding, error) {
	label = strings.TrimSpace(label)
	switch {
	case strings.Contains(label, signing.LabelRSAPublicKey):
		return EncodingPKCS1, nil
	case label == signing.LabelPublicKey:
		return EncodingSPKI, nil
	default:
		return "", fmt.Errorf("%w: %q is not a public key label", signing.ErrUnsupportedKeyFormat, label)
	}
}

// WrapPKCS1PrivateToPKCS8 embeds a PKCS#1 RSAPrivateKey in a PrivateKeyInfo:
// SEQUENCE { INTEGER 0, SEQUENCE { rsaEncryption, NULL }, OCTET STRING pkcs1 }.
// The inner key is not parsed.
func WrapPKCS1PrivateToPKCS8(pkcs1 []byte) []byte {
	return der.Sequence(
		der.IntegerZero(),
		der.RSAAlgorithmIdentifier(),
		der.OctetString(pkcs1),
	)
}

// WrapPKCS1PublicToSPKI embeds a PKCS#1 RSAPublicKey in a SubjectPublicKeyInfo:
// SEQUENCE { SEQUENCE { rsaEncryption, NULL }, BIT STRING pkcs1 }.
// The inner key is not parsed.
func WrapPKCS1PublicToSPKI(pkcs1 []byte) []byte {
	return der.Sequence(
		der.RSAAlgorithmIdentifier(),
		der.BitString(pkcs1),
	)
}

// DecodePrivate decodes private key PEM text and detects its encoding.
func DecodePrivate(text string) (*KeyMaterial, error) {
	return decode(text, ClassifyPrivate)
}

// DecodePublic decodes public key PEM text and detects its encoding.
func DecodePublic(text string) (*KeyMaterial, error) {
	return decode(text, ClassifyPublic)
}

func decode(text string, classify func(string) (Encoding, error)) (*KeyMaterial, error) {
	label := pemutil.Label(text)
	if label == "" {
		return nil, fmt.Errorf("%w: no -----BEGIN marker found", signing.ErrMalformedPEM)
	}

	// Classify before decoding so an EC key reports its format, not its body.
	encoding, err := classify(label)
	if err != nil {
		return nil, err
	}

	_, body, err := pemutil.DecodePEM(text)
	if err != nil {
		return nil, err
	}

	return &KeyMaterial{Encoding: encoding, Label: label, DER: body}, nil
}

// importable returns the DER and container format the primitive accepts for k.
func (k *KeyMaterial) importable() ([]byte, signing.KeyFormat) {
	switch k.Encoding {
	case EncodingPKCS1:
		if strings.Contains(k.Label, signing.LabelRSAPrivateKey) {
			return WrapPKCS1PrivateToPKCS8(k.DER), signing.KeyFormatPKCS8
		}
		return WrapPKCS1PublicToSPKI(k.DER), signing.KeyFormatSPKI
	case EncodingSPKI:
		return k.DER, signing.KeyFormatSPKI
	default:
		return k.DER, signing.KeyFormatPKCS8
	}
}
