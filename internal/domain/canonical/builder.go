package canonical

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
)

// Mode selects how the JSON payload is normalized before hashing.
type Mode string

// Supported payload normalizations
const (
	// ModeMinify keeps parse order and only removes insignificant whitespace.
	ModeMinify Mode = "minify"
	// ModeJCS applies RFC 8785 canonicalization (sorted keys).
	ModeJCS Mode = "jcs"
)

// Separator joins the four canonical string components.
const Separator = ":"

// Builder derives canonical strings. It holds no per-request state and is
// safe for concurrent use.
type Builder struct {
	digester signing.Digester
	mode     Mode
}

// NewBuilder creates a Builder hashing through digester. An empty mode means ModeMinify.
func NewBuilder(digester signing.Digester, mode Mode) (*Builder, error) {
	if digester == nil {
		return nil, fmt.Errorf("digester cannot be nil")
	}
	switch mode {
	case "":
		mode = ModeMinify
	case ModeMinify, ModeJCS:
	default:
		return nil, fmt.Errorf("unsupported canonicalization mode: %s", mode)
	}
	return &Builder{digester: digester, mode: mode}, nil
}

// Mode reports the payload normalization in use.
func (b *Builder) Mode() Mode {
	return b.mode
}

// NormalizePayload returns the payload text exactly as it is hashed.
func (b *Builder) NormalizePayload(payload string) (string, error) {
	if b.mode == ModeJCS {
		return CanonicalizeJCS(payload)
	}
	return MinifyJSON(payload)
}

// Build normalizes payload, hashes it and composes the canonical string.
// The method is upper-cased; endpoint and timestamp are used verbatim.
func (b *Builder) Build(ctx context.Context, method, endpoint, payload, timestamp string) (*signing.CanonicalPreview, error) {
	minified, err := b.NormalizePayload(payload)
	if err != nil {
		return nil, err
	}

	bodyHash, err := SHA256HexLower(ctx, b.digester, []byte(minified))
	if err != nil {
		return nil, err
	}

	return &signing.CanonicalPreview{
		MinifiedJSON:    minified,
		BodyHashHex:     bodyHash,
		CanonicalString: Compose(method, endpoint, bodyHash, timestamp),
	}, nil
}

// Compose joins the components of a canonical string.
func Compose(method, endpoint, bodyHashHex, timestamp string) string {
	return strings.Join([]string{strings.ToUpper(method), endpoint, bodyHashHex, timestamp}, Separator)
}

// SHA256HexLower digests data through d and renders the 32-byte result as 64 lowercase hex characters.
func SHA256HexLower(ctx context.Context, d signing.Digester, data []byte) (string, error) {
	sum, err := d.Digest(ctx, data)
	if err != nil {
		return "", fmt.Errorf("failed to digest payload: %w", err)
	}
	if len(sum) != sha256.Size {
		return "", fmt.Errorf("digest has %d bytes, want %d", len(sum), sha256.Size)
	}
	return hex.EncodeToString(sum), nil
}
