// Package cryptography provides the software signing primitive backed by
// crypto/rsa. Keys are imported from PKCS#8 and SPKI DER and are restricted
// to a single usage.
package cryptography
