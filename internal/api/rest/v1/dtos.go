package v1

import (
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/MGTheTrain/request-signer/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// CanonicalRequestDTO carries the four canonical string inputs
type CanonicalRequestDTO struct {
	HTTPMethod  string `json:"httpMethod"`
	Endpoint    string `json:"endpoint"`
	PayloadJSON string `json:"payloadJson"`
	Timestamp   string `json:"timestamp"`
}

// ToDomain converts the DTO into a signing.CanonicalRequest
func (r *CanonicalRequestDTO) ToDomain() *signing.CanonicalRequest {
	return &signing.CanonicalRequest{
		HTTPMethod: r.HTTPMethod,
		Endpoint:   r.Endpoint,
		Payload:    r.PayloadJSON,
		Timestamp:  r.Timestamp,
	}
}

// Validate runs the pre-flight check of the canonical request
func (r *CanonicalRequestDTO) Validate() error {
	return r.ToDomain().Validate()
}

// SignRequest is the body of POST /sign
type SignRequest struct {
	CanonicalRequestDTO
	PrivatePEM string `json:"privatePem"`
	WrapLines  bool   `json:"wrapLines"`
}

// Validate checks the canonical request and that the key text looks like a private key
func (r *SignRequest) Validate() error {
	if err := r.CanonicalRequestDTO.Validate(); err != nil {
		return err
	}
	return signing.ValidateKeyText(r.PrivatePEM)
}

// VerifyRequest is the body of POST /verify
type VerifyRequest struct {
	CanonicalRequestDTO
	PublicPEM string `json:"publicPem"`
	Signature string `json:"signature"`
}

// Validate checks the canonical request, the key text and that a signature is present
func (r *VerifyRequest) Validate() error {
	if err := r.CanonicalRequestDTO.Validate(); err != nil {
		return err
	}
	if err := signing.ValidateKeyText(r.PublicPEM); err != nil {
		return err
	}
	if r.Signature == "" {
		return fmt.Errorf("%w: signature is required", signing.ErrInvalidMetadata)
	}
	return nil
}

// GenerateKeyRequest is the body of POST /keys
type GenerateKeyRequest struct {
	ModulusBits int  `json:"modulusBits" validate:"omitempty,rsa_modulus"`
	SingleLine  bool `json:"singleLine"`
}

// Validate for validating GenerateKeyRequest struct
func (r *GenerateKeyRequest) Validate() error {
	err := validators.New().Struct(r)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("%w: %v", signing.ErrInvalidMetadata, messages)
		}
		return fmt.Errorf("%w: %v", signing.ErrInvalidMetadata, err)
	}
	return nil
}

// PreviewResponse returns the derived canonical string and its intermediate values
type PreviewResponse struct {
	MinifiedJSON    string `json:"minifiedJson"`
	BodyHashHex     string `json:"bodyHashHex"`
	CanonicalString string `json:"canonicalString"`
}

func newPreviewResponse(p *signing.CanonicalPreview) PreviewResponse {
	return PreviewResponse{
		MinifiedJSON:    p.MinifiedJSON,
		BodyHashHex:     p.BodyHashHex,
		CanonicalString: p.CanonicalString,
	}
}

// SignResponse returns a produced signature
type SignResponse struct {
	PreviewResponse
	SignatureBase64 string `json:"signatureBase64"`
	// SignatureWrapped is the same signature split into three lines for display.
	SignatureWrapped string `json:"signatureWrapped,omitempty"`
}

// VerifyResponse returns the verdict of a verification
type VerifyResponse struct {
	PreviewResponse
	Valid bool `json:"valid"`
}

// KeyPairResponse returns a generated key pair
type KeyPairResponse struct {
	PrivatePEM  string `json:"privatePem"`
	PublicPEM   string `json:"publicPem"`
	ModulusBits int    `json:"modulusBits"`
}

// SignatureRecordResponse returns a stored signature audit record
type SignatureRecordResponse struct {
	ID              string    `json:"id"`
	Operation       string    `json:"operation"`
	HTTPMethod      string    `json:"httpMethod"`
	Endpoint        string    `json:"endpoint"`
	Timestamp       string    `json:"timestamp"`
	BodyHashHex     string    `json:"bodyHashHex"`
	CanonicalString string    `json:"canonicalString"`
	SignatureBase64 string    `json:"signatureBase64"`
	Valid           bool      `json:"valid"`
	DateTimeCreated time.Time `json:"dateTimeCreated"`
}

func newSignatureRecordResponse(r *signing.SignatureRecord) SignatureRecordResponse {
	return SignatureRecordResponse{
		ID:              r.ID,
		Operation:       r.Operation,
		HTTPMethod:      r.HTTPMethod,
		Endpoint:        r.Endpoint,
		Timestamp:       r.Timestamp,
		BodyHashHex:     r.BodyHashHex,
		CanonicalString: r.CanonicalString,
		SignatureBase64: r.SignatureBase64,
		Valid:           r.Valid,
		DateTimeCreated: r.DateTimeCreated,
	}
}

// TimestampResponse returns the server's local ISO-8601 time
type TimestampResponse struct {
	Timestamp string `json:"timestamp"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
