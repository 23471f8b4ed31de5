// Package signing defines the models, contracts and error taxonomy for producing and
// verifying RSASSA-PKCS1-v1_5/SHA-256 signatures over canonical request strings.
//
// The cryptographic work itself is delegated to a Primitive, so the orchestration
// can be exercised with the software implementation or with a fake.
package signing
