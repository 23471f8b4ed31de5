package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	testKey     *rsa.PrivateKey
	testKeyErr  error
	testKeyOnce sync.Once
)

// TestRSAKey returns a 2048-bit RSA key shared by all tests of a package run.
func TestRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	testKeyOnce.Do(func() {
		testKey, testKeyErr = rsa.GenerateKey(rand.Reader, 2048)
	})
	require.NoError(t, testKeyErr)
	return testKey
}

// PKCS1PrivatePEM armors key as an "RSA PRIVATE KEY" block.
func PKCS1PrivatePEM(key *rsa.PrivateKey) string {
	return encodePEM("RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(key))
}

// PKCS8PrivatePEM armors key as a "PRIVATE KEY" block.
func PKCS8PrivatePEM(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()

	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return encodePEM("PRIVATE KEY", der)
}

// PKCS1PublicPEM armors the public half of key as an "RSA PUBLIC KEY" block.
func PKCS1PublicPEM(key *rsa.PrivateKey) string {
	return encodePEM("RSA PUBLIC KEY", x509.MarshalPKCS1PublicKey(&key.PublicKey))
}

// SPKIPublicPEM armors the public half of key as a "PUBLIC KEY" block.
func SPKIPublicPEM(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return encodePEM("PUBLIC KEY", der)
}

func encodePEM(label string, der []byte) string {
	return string(pem.EncodeToMemory(&pem.Block{Type: label, Bytes: der}))
}
