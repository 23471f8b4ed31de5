// Package v1 exposes the request signer over HTTP with gin.
//
// Taxonomy errors (invalid JSON, malformed PEM, unsupported key format, ...)
// are answered with 400 and their code, unknown signature records with 404.
// A signature that does not verify is a successful response with valid=false.
package v1
