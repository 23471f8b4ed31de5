package signing

import "context"

// KeyHandle is an imported key owned by a Primitive. Handles are created per
// call and are never cached or shared.
type KeyHandle interface {
	// Usage reports what the handle was imported for.
	Usage() KeyUsage
}

// Digester computes SHA-256 digests.
type Digester interface {
	Digest(ctx context.Context, data []byte) ([]byte, error)
}

// Primitive is the external cryptographic capability the signer delegates to.
// All algorithms are fixed to RSASSA-PKCS1-v1_5 with SHA-256.
type Primitive interface {
	Digester

	// ImportKey imports a PKCS#8 private key or SPKI public key restricted to usage.
	ImportKey(ctx context.Context, format KeyFormat, der []byte, usage KeyUsage) (KeyHandle, error)

	// Sign signs data with a sign-usage handle.
	Sign(ctx context.Context, key KeyHandle, data []byte) ([]byte, error)

	// Verify checks signature over data. A mismatch is (false, nil).
	Verify(ctx context.Context, key KeyHandle, signature, data []byte) (bool, error)

	// GenerateKeyPair generates an RSA key pair with the given modulus length.
	GenerateKeyPair(ctx context.Context, modulusBits int) (KeyHandle, KeyHandle, error)

	// ExportKey exports a handle as PKCS#8 or SPKI DER.
	ExportKey(ctx context.Context, format KeyFormat, key KeyHandle) ([]byte, error)
}

// SigningService produces and checks signatures over canonical request strings.
type SigningService interface {
	// Preview builds the canonical string without touching any key.
	Preview(ctx context.Context, req *CanonicalRequest) (*CanonicalPreview, error)

	// Sign signs the canonical string of req with a PKCS#1 or PKCS#8 private key PEM.
	Sign(ctx context.Context, req *CanonicalRequest, privatePEM string) (*SignResult, error)

	// Verify checks a Base64 signature against the canonical string of req
	// with a PKCS#1 or SPKI public key PEM.
	Verify(ctx context.Context, req *CanonicalRequest, publicPEM, signatureBase64 string) (*VerifyResult, error)
}

// KeyService generates demo key pairs.
type KeyService interface {
	// GenerateKeyPair returns a PKCS#8/SPKI PEM key pair.
	GenerateKeyPair(ctx context.Context, modulusBits int, singleLine bool) (*KeyPairPEM, error)
}

// SignatureRecordRepository defines the interface for signature record persistence
type SignatureRecordRepository interface {
	Create(ctx context.Context, record *SignatureRecord) error
	List(ctx context.Context, query *SignatureRecordQuery) ([]*SignatureRecord, error)
	GetByID(ctx context.Context, recordID string) (*SignatureRecord, error)
}

// SignatureRecordService exposes stored signature records.
type SignatureRecordService interface {
	List(ctx context.Context, query *SignatureRecordQuery) ([]*SignatureRecord, error)
	GetByID(ctx context.Context, recordID string) (*SignatureRecord, error)
}
