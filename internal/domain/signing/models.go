package signing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MGTheTrain/request-signer/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// CanonicalRequest carries the inputs of one sign or verify call.
type CanonicalRequest struct {
	HTTPMethod string `json:"httpMethod" validate:"required,http_method"`
	Endpoint   string `json:"endpoint" validate:"required,startswith=/"`
	Payload    string `json:"payloadJson" validate:"required"`
	Timestamp  string `json:"timestamp" validate:"required,iso8601_timestamp"`
}

// Validate is the pre-flight check callers run before signing or verifying.
// A payload that does not parse yields ErrInvalidJSON; any metadata field
// failing its pattern yields ErrInvalidMetadata.
func (r *CanonicalRequest) Validate() error {
	if !json.Valid([]byte(r.Payload)) {
		return fmt.Errorf("%w: payload does not parse", ErrInvalidJSON)
	}

	err := validators.New().Struct(r)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("%w: %v", ErrInvalidMetadata, messages)
		}
		return fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}

	return nil
}

// ValidateKeyText reports whether text looks like a private or public key at all.
func ValidateKeyText(text string) error {
	if strings.Contains(text, LabelPrivateKey) || strings.Contains(text, LabelPublicKey) {
		return nil
	}
	return fmt.Errorf("%w: key text mentions neither %q nor %q", ErrInvalidMetadata, LabelPrivateKey, LabelPublicKey)
}

// CanonicalPreview is the derived canonical string together with its intermediate values.
type CanonicalPreview struct {
	MinifiedJSON    string `json:"minifiedJson"`
	BodyHashHex     string `json:"bodyHashHex"`
	CanonicalString string `json:"canonicalString"`
}

// SignResult is the outcome of a successful sign call.
type SignResult struct {
	CanonicalPreview
	SignatureBase64 string `json:"signatureBase64"`
}

// VerifyResult is the outcome of a verify call that reached a verdict.
type VerifyResult struct {
	CanonicalPreview
	Valid bool `json:"valid"`
}

// KeyPairPEM holds a freshly generated key pair armored as PKCS#8 and SPKI PEM.
type KeyPairPEM struct {
	PrivateKeyPEM string `json:"privatePem"`
	PublicKeyPEM  string `json:"publicPem"`
	ModulusBits   int    `json:"modulusBits"`
}

// SignatureRecord is the audit entry stored for one sign or verify outcome.
// It never carries key material.
type SignatureRecord struct {
	ID              string    `validate:"required,uuid4"`
	Operation       string    `validate:"required,oneof=sign verify"`
	HTTPMethod      string    `validate:"required"`
	Endpoint        string    `validate:"required"`
	Timestamp       string    `validate:"required"`
	BodyHashHex     string    `validate:"required,len=64,hexadecimal"`
	CanonicalString string    `validate:"required"`
	SignatureBase64 string    `validate:"required"`
	DateTimeCreated time.Time `validate:"required"`
	Valid           bool
}

// Validate for validating SignatureRecord struct
func (r *SignatureRecord) Validate() error {
	validate := validator.New()

	err := validate.Struct(r)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// SignatureRecordQuery filters and paginates signature records.
type SignatureRecordQuery struct {
	Operation string `validate:"omitempty,oneof=sign verify"`
	Limit     int    `validate:"omitempty,gt=0"`
	Offset    int    `validate:"omitempty,gte=0"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
	Endpoint  string
}

// NewSignatureRecordQuery returns a query with the default page size.
func NewSignatureRecordQuery() *SignatureRecordQuery {
	return &SignatureRecordQuery{
		Limit:     50,
		SortOrder: "desc",
	}
}

// Validate for validating SignatureRecordQuery struct
func (q *SignatureRecordQuery) Validate() error {
	if err := validator.New().Struct(q); err != nil {
		return fmt.Errorf("validation failed for SignatureRecordQuery: %w", err)
	}
	return nil
}
