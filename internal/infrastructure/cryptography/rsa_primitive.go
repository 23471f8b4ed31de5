package cryptography

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/MGTheTrain/request-signer/internal/pkg/logger"
)

// rsaKeyHandle holds an imported RSA key. Exactly one of private and public is used
// depending on usage.
type rsaKeyHandle struct {
	usage   signing.KeyUsage
	private *rsa.PrivateKey
	public  *rsa.PublicKey
}

// Usage reports what the handle was imported for.
func (h *rsaKeyHandle) Usage() signing.KeyUsage {
	return h.usage
}

// rsaPrimitive implements signing.Primitive with RSASSA-PKCS1-v1_5 and SHA-256.
type rsaPrimitive struct {
	logger logger.Logger
}

// NewRSAPrimitive creates and returns a new software RSA primitive
func NewRSAPrimitive(logger logger.Logger) (signing.Primitive, error) {
	return &rsaPrimitive{
		logger: logger,
	}, nil
}

// Digest returns the SHA-256 digest of data.
func (r *rsaPrimitive) Digest(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	return sum[:], nil
}

// ImportKey parses PKCS#8 private or SPKI public DER. Private keys can only be
// imported for signing and public keys only for verification.
func (r *rsaPrimitive) ImportKey(ctx context.Context, format signing.KeyFormat, der []byte, usage signing.KeyUsage) (signing.KeyHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch format {
	case signing.KeyFormatPKCS8:
		if usage != signing.KeyUsageSign {
			return nil, fmt.Errorf("private key cannot be imported for %s", usage)
		}
		key, err := x509.ParsePKCS8PrivateKey(der)
		if err != nil {
			return nil, fmt.Errorf("unable to parse PKCS#8 private key: %w", err)
		}
		privateKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("private key is not of type RSA")
		}
		return &rsaKeyHandle{usage: usage, private: privateKey}, nil
	case signing.KeyFormatSPKI:
		if usage != signing.KeyUsageVerify {
			return nil, fmt.Errorf("public key cannot be imported for %s", usage)
		}
		key, err := x509.ParsePKIXPublicKey(der)
		if err != nil {
			return nil, fmt.Errorf("unable to parse SPKI public key: %w", err)
		}
		publicKey, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("public key is not of type RSA")
		}
		return &rsaKeyHandle{usage: usage, public: publicKey}, nil
	default:
		return nil, fmt.Errorf("unsupported key format: %s", format)
	}
}

// Sign creates an RSASSA-PKCS1-v1_5 signature over the SHA-256 digest of data.
func (r *rsaPrimitive) Sign(ctx context.Context, key signing.KeyHandle, data []byte) ([]byte, error) {
	handle, err := r.handle(key, signing.KeyUsageSign)
	if err != nil {
		return nil, err
	}

	hashed, err := r.Digest(ctx, data)
	if err != nil {
		return nil, err
	}

	signature, err := rsa.SignPKCS1v15(rand.Reader, handle.private, crypto.SHA256, hashed)
	if err != nil {
		return nil, fmt.Errorf("failed to sign data: %w", err)
	}

	r.logger.Debug("RSA signing succeeded")
	return signature, nil
}

// Verify checks an RSASSA-PKCS1-v1_5 signature. A signature that does not match,
// including one of the wrong length, yields false without an error.
func (r *rsaPrimitive) Verify(ctx context.Context, key signing.KeyHandle, signature, data []byte) (bool, error) {
	handle, err := r.handle(key, signing.KeyUsageVerify)
	if err != nil {
		return false, err
	}

	hashed, err := r.Digest(ctx, data)
	if err != nil {
		return false, err
	}

	err = rsa.VerifyPKCS1v15(handle.public, crypto.SHA256, hashed, signature)
	if errors.Is(err, rsa.ErrVerification) {
		r.logger.Debug("RSA signature did not match")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to verify signature: %w", err)
	}

	r.logger.Debug("RSA signature verified successfully")
	return true, nil
}

// GenerateKeyPair generates an RSA key pair with the specified modulus length.
// The private handle is sign-only and the public handle verify-only.
func (r *rsaPrimitive) GenerateKeyPair(ctx context.Context, modulusBits int) (signing.KeyHandle, signing.KeyHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, modulusBits)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate RSA keys: %w", err)
	}

	r.logger.Info("Generated RSA key pair with ", modulusBits, " bit modulus")
	return &rsaKeyHandle{usage: signing.KeyUsageSign, private: privateKey},
		&rsaKeyHandle{usage: signing.KeyUsageVerify, public: &privateKey.PublicKey},
		nil
}

// ExportKey marshals a private handle as PKCS#8 or a public handle as SPKI DER.
func (r *rsaPrimitive) ExportKey(ctx context.Context, format signing.KeyFormat, key signing.KeyHandle) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch format {
	case signing.KeyFormatPKCS8:
		handle, err := r.handle(key, signing.KeyUsageSign)
		if err != nil {
			return nil, err
		}
		der, err := x509.MarshalPKCS8PrivateKey(handle.private)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal private key: %w", err)
		}
		return der, nil
	case signing.KeyFormatSPKI:
		handle, err := r.handle(key, signing.KeyUsageVerify)
		if err != nil {
			return nil, err
		}
		der, err := x509.MarshalPKIXPublicKey(handle.public)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal public key: %w", err)
		}
		return der, nil
	default:
		return nil, fmt.Errorf("unsupported key format: %s", format)
	}
}

func (r *rsaPrimitive) handle(key signing.KeyHandle, usage signing.KeyUsage) (*rsaKeyHandle, error) {
	handle, ok := key.(*rsaKeyHandle)
	if !ok || handle == nil {
		return nil, fmt.Errorf("key handle was not issued by the RSA primitive")
	}
	if handle.usage != usage {
		return nil, fmt.Errorf("key imported for %s cannot be used to %s", handle.usage, usage)
	}
	return handle, nil
}
