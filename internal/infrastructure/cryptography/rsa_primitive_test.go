//go:build unit
// +build unit

package cryptography

import (
	"context"
	"crypto/sha256"
	"crypto/x509"
	"testing"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/MGTheTrain/request-signer/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModulusBits = 2048

func setupRSAPrimitive(t *testing.T) signing.Primitive {
	t.Helper()
	logger := testutil.SetupTestLogger(t)
	primitive, err := NewRSAPrimitive(logger)
	require.NoError(t, err)
	return primitive
}

func importTestKeys(t *testing.T, primitive signing.Primitive) (signing.KeyHandle, signing.KeyHandle) {
	t.Helper()
	ctx := context.Background()
	key := testutil.TestRSAKey(t)

	pkcs8, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	spki, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	privateHandle, err := primitive.ImportKey(ctx, signing.KeyFormatPKCS8, pkcs8, signing.KeyUsageSign)
	require.NoError(t, err)
	publicHandle, err := primitive.ImportKey(ctx, signing.KeyFormatSPKI, spki, signing.KeyUsageVerify)
	require.NoError(t, err)
	return privateHandle, publicHandle
}

func TestRSAPrimitive(t *testing.T) {
	primitive := setupRSAPrimitive(t)
	ctx := context.Background()
	privateHandle, publicHandle := importTestKeys(t, primitive)
	data := []byte("POST:/v1/qris/create:57f10db4c1ccb834fbd779275a793b487a8904b987c909337f1270965063ba5a:2024-01-01T00:00:00+07:00")

	t.Run("Digest", func(t *testing.T) {
		digest, err := primitive.Digest(ctx, []byte("abc"))
		require.NoError(t, err)
		expected := sha256.Sum256([]byte("abc"))
		assert.Equal(t, expected[:], digest)
	})

	t.Run("SignVerify", func(t *testing.T) {
		signature, err := primitive.Sign(ctx, privateHandle, data)
		require.NoError(t, err)
		assert.Len(t, signature, testModulusBits/8)

		valid, err := primitive.Verify(ctx, publicHandle, signature, data)
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("SignIsDeterministic", func(t *testing.T) {
		first, err := primitive.Sign(ctx, privateHandle, data)
		require.NoError(t, err)
		second, err := primitive.Sign(ctx, privateHandle, data)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("VerifyFlippedSignature", func(t *testing.T) {
		signature, err := primitive.Sign(ctx, privateHandle, data)
		require.NoError(t, err)
		signature[0] ^= 0x01

		valid, err := primitive.Verify(ctx, publicHandle, signature, data)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("VerifyOtherData", func(t *testing.T) {
		signature, err := primitive.Sign(ctx, privateHandle, data)
		require.NoError(t, err)

		valid, err := primitive.Verify(ctx, publicHandle, signature, []byte("GET:/other"))
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("VerifyTruncatedSignature", func(t *testing.T) {
		valid, err := primitive.Verify(ctx, publicHandle, []byte{0x01, 0x02}, data)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("UsageIsEnforced", func(t *testing.T) {
		_, err := primitive.Sign(ctx, publicHandle, data)
		assert.Error(t, err)

		_, err = primitive.Verify(ctx, privateHandle, []byte{0x00}, data)
		assert.Error(t, err)
	})

	t.Run("ExportRoundTrip", func(t *testing.T) {
		pkcs8, err := primitive.ExportKey(ctx, signing.KeyFormatPKCS8, privateHandle)
		require.NoError(t, err)
		spki, err := primitive.ExportKey(ctx, signing.KeyFormatSPKI, publicHandle)
		require.NoError(t, err)

		reimported, err := primitive.ImportKey(ctx, signing.KeyFormatPKCS8, pkcs8, signing.KeyUsageSign)
		require.NoError(t, err)
		signature, err := primitive.Sign(ctx, reimported, data)
		require.NoError(t, err)

		reimportedPublic, err := primitive.ImportKey(ctx, signing.KeyFormatSPKI, spki, signing.KeyUsageVerify)
		require.NoError(t, err)
		valid, err := primitive.Verify(ctx, reimportedPublic, signature, data)
		require.NoError(t, err)
		assert.True(t, valid)

		_, err = primitive.ExportKey(ctx, signing.KeyFormatSPKI, privateHandle)
		assert.Error(t, err)
	})
}

func TestRSAPrimitive_ImportKeyErrors(t *testing.T) {
	primitive := setupRSAPrimitive(t)
	ctx := context.Background()
	key := testutil.TestRSAKey(t)

	pkcs8, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	spki, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	tests := []struct {
		name   string
		format signing.KeyFormat
		der    []byte
		usage  signing.KeyUsage
	}{
		{"garbage pkcs8", signing.KeyFormatPKCS8, []byte{0x30, 0x03, 0x02, 0x01, 0x00}, signing.KeyUsageSign},
		{"garbage spki", signing.KeyFormatSPKI, []byte("not der"), signing.KeyUsageVerify},
		{"private key for verify", signing.KeyFormatPKCS8, pkcs8, signing.KeyUsageVerify},
		{"public key for sign", signing.KeyFormatSPKI, spki, signing.KeyUsageSign},
		{"spki parsed as pkcs8", signing.KeyFormatPKCS8, spki, signing.KeyUsageSign},
		{"unknown format", signing.KeyFormat("jwk"), pkcs8, signing.KeyUsageSign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := primitive.ImportKey(ctx, tt.format, tt.der, tt.usage)
			assert.Error(t, err)
		})
	}
}

func TestRSAPrimitive_GenerateKeyPair(t *testing.T) {
	primitive := setupRSAPrimitive(t)
	ctx := context.Background()

	privateHandle, publicHandle, err := primitive.GenerateKeyPair(ctx, testModulusBits)
	require.NoError(t, err)
	assert.Equal(t, signing.KeyUsageSign, privateHandle.Usage())
	assert.Equal(t, signing.KeyUsageVerify, publicHandle.Usage())

	signature, err := primitive.Sign(ctx, privateHandle, []byte("data"))
	require.NoError(t, err)
	valid, err := primitive.Verify(ctx, publicHandle, signature, []byte("data"))
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestRSAPrimitive_CanceledContext(t *testing.T) {
	primitive := setupRSAPrimitive(t)
	privateHandle, _ := importTestKeys(t, primitive)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := primitive.Digest(ctx, []byte("data"))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = primitive.Sign(ctx, privateHandle, []byte("data"))
	assert.ErrorIs(t, err, context.Canceled)

	_, _, err = primitive.GenerateKeyPair(ctx, testModulusBits)
	assert.ErrorIs(t, err, context.Canceled)
}
