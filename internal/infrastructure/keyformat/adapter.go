package keyformat

import (
	"context"
	"fmt"
	"strings"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/MGTheTrain/request-signer/internal/pkg/logger"
	"github.com/MGTheTrain/request-signer/internal/pkg/pemutil"
)

// Adapter turns PEM key text into key handles of a signing.Primitive.
type Adapter struct {
	primitive signing.Primitive
	logger    logger.Logger
}

// NewAdapter creates an Adapter importing keys through primitive.
func NewAdapter(primitive signing.Primitive, logger logger.Logger) (*Adapter, error) {
	if primitive == nil {
		return nil, fmt.Errorf("primitive cannot be nil")
	}
	return &Adapter{
		primitive: primitive,
		logger:    logger,
	}, nil
}

// ImportPrivateKey imports PKCS#1 or PKCS#8 private key PEM text as a sign-only handle.
func (a *Adapter) ImportPrivateKey(ctx context.Context, text string) (signing.KeyHandle, error) {
	material, err := DecodePrivate(text)
	if err != nil {
		return nil, err
	}
	return a.importMaterial(ctx, material, signing.KeyUsageSign)
}

// ImportPublicKey imports PKCS#1 or SPKI public key PEM text as a verify-only handle.
func (a *Adapter) ImportPublicKey(ctx context.Context, text string) (signing.KeyHandle, error) {
	material, err := DecodePublic(text)
	if err != nil {
		return nil, err
	}
	return a.importMaterial(ctx, material, signing.KeyUsageVerify)
}

// Normalize re-armors a private or public key as PKCS#8 "PRIVATE KEY" or SPKI
// "PUBLIC KEY" PEM. The key is imported once so that undecodable keys are rejected.
func (a *Adapter) Normalize(ctx context.Context, text string, singleLine bool) (string, error) {
	var (
		material *KeyMaterial
		usage    signing.KeyUsage
		label    string
		err      error
	)
	if strings.Contains(pemutil.Label(text), "PUBLIC") {
		material, err = DecodePublic(text)
		usage, label = signing.KeyUsageVerify, signing.LabelPublicKey
	} else {
		material, err = DecodePrivate(text)
		usage, label = signing.KeyUsageSign, signing.LabelPrivateKey
	}
	if err != nil {
		return "", err
	}

	if _, err := a.importMaterial(ctx, material, usage); err != nil {
		return "", err
	}

	body, _ := material.importable()
	return pemutil.EncodePEM(label, body, singleLine), nil
}

func (a *Adapter) importMaterial(ctx context.Context, material *KeyMaterial, usage signing.KeyUsage) (signing.KeyHandle, error) {
	body, format := material.importable()
	if material.IsPKCS1() {
		a.logger.Debug("Wrapped PKCS#1 key labelled ", material.Label, " into ", format)
	}

	handle, err := a.primitive.ImportKey(ctx, format, body, usage)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s: %v", signing.ErrKeyImportFailed, material.Label, err)
	}
	return handle, nil
}
