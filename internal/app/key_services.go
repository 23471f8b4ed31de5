package app

import (
	"context"
	"fmt"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/MGTheTrain/request-signer/internal/pkg/logger"
	"github.com/MGTheTrain/request-signer/internal/pkg/pemutil"
	"github.com/MGTheTrain/request-signer/internal/pkg/validators"
)

// keyService implements the KeyService interface for demo key pairs.
type keyService struct {
	primitive   signing.Primitive
	modulusBits int
	logger      logger.Logger
}

// NewKeyService creates a new keyService instance. defaultModulusBits is used when a request asks for 0 bits.
func NewKeyService(primitive signing.Primitive, defaultModulusBits int, logger logger.Logger) (signing.KeyService, error) {
	if primitive == nil {
		return nil, fmt.Errorf("primitive cannot be nil")
	}
	if defaultModulusBits == 0 {
		defaultModulusBits = signing.DefaultModulusBits
	}
	if err := validators.New().Var(defaultModulusBits, validators.TagRSAModulus); err != nil {
		return nil, fmt.Errorf("unsupported default modulus length %d", defaultModulusBits)
	}
	return &keyService{
		primitive:   primitive,
		modulusBits: defaultModulusBits,
		logger:      logger,
	}, nil
}

// GenerateKeyPair generates an RSA key pair and exports it as PKCS#8 "PRIVATE KEY"
// and SPKI "PUBLIC KEY" PEM.
func (s *keyService) GenerateKeyPair(ctx context.Context, modulusBits int, singleLine bool) (*signing.KeyPairPEM, error) {
	if modulusBits == 0 {
		modulusBits = s.modulusBits
	}
	if err := validators.New().Var(modulusBits, validators.TagRSAModulus); err != nil {
		return nil, fmt.Errorf("%w: unsupported modulus length %d", signing.ErrInvalidMetadata, modulusBits)
	}

	privateKey, publicKey, err := s.primitive.GenerateKeyPair(ctx, modulusBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key pair: %w", err)
	}

	privateDER, err := s.primitive.ExportKey(ctx, signing.KeyFormatPKCS8, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to export private key: %w", err)
	}

	publicDER, err := s.primitive.ExportKey(ctx, signing.KeyFormatSPKI, publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to export public key: %w", err)
	}

	return &signing.KeyPairPEM{
		PrivateKeyPEM: pemutil.EncodePEM(signing.LabelPrivateKey, privateDER, singleLine),
		PublicKeyPEM:  pemutil.EncodePEM(signing.LabelPublicKey, publicDER, singleLine),
		ModulusBits:   modulusBits,
	}, nil
}
