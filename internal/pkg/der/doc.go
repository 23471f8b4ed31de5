// Package der builds the handful of ASN.1 DER nodes needed to wrap PKCS#1 RSA
// keys into PKCS#8 and SubjectPublicKeyInfo containers.
package der
