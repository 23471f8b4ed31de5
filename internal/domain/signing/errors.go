package signing

import (
	"errors"

	"github.com/MGTheTrain/request-signer/internal/pkg/pemutil"
)

var (
	// ErrInvalidJSON is returned when the payload is not syntactically valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON payload")
	// ErrInvalidMetadata is returned by the pre-flight check when method, endpoint or timestamp are malformed.
	ErrInvalidMetadata = errors.New("invalid request metadata")
	// ErrMalformedPEM is returned when key text has no BEGIN marker or an undecodable body.
	ErrMalformedPEM = pemutil.ErrMalformedPEM
	// ErrMalformedBase64 is returned when signature text cannot be decoded.
	ErrMalformedBase64 = pemutil.ErrMalformedBase64
	// ErrUnsupportedKeyFormat is returned for PEM labels other than the four RSA key labels.
	ErrUnsupportedKeyFormat = errors.New("unsupported key format")
	// ErrKeyImportFailed is returned when the primitive rejects well-formed looking DER.
	ErrKeyImportFailed = errors.New("key import failed")
	// ErrSignFailed is returned when the primitive fails to produce a signature.
	ErrSignFailed = errors.New("sign failed")
	// ErrVerifyFailed is returned when the primitive fails to reach a verdict.
	// A signature that simply does not match is not an error.
	ErrVerifyFailed = errors.New("verify failed")

	// ErrRecordNotFound is returned when no signature record has the requested ID.
	ErrRecordNotFound = errors.New("signature record not found")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrInvalidJSON, "InvalidJson"},
	{ErrInvalidMetadata, "InvalidMetadata"},
	{ErrMalformedPEM, "MalformedPem"},
	{ErrMalformedBase64, "MalformedBase64"},
	{ErrUnsupportedKeyFormat, "UnsupportedKeyFormat"},
	{ErrKeyImportFailed, "KeyImportFailed"},
	{ErrSignFailed, "SignFailed"},
	{ErrVerifyFailed, "VerifyFailed"},
}

// ErrorCode returns the taxonomy name of err, or an empty string when err
// does not wrap one of the signing sentinels.
func ErrorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
