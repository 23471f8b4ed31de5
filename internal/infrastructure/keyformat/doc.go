// Package keyformat detects the container format of RSA key PEM text and
// rewraps PKCS#1 keys into the PKCS#8 and SPKI containers the signing
// primitive imports.
package keyformat
