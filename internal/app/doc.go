// Package app implements the signing, key generation and signature record
// services on top of the domain contracts.
package app
