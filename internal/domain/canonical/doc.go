// Package canonical derives the exact string that gets signed for a request:
//
//	METHOD:ENDPOINT:lowerhex(SHA-256(minified JSON body)):TIMESTAMP
//
// The body is re-serialized compactly in parse order, not sorted. Signer and
// verifier therefore have to agree on the textual payload, including key
// order. ModeJCS switches to RFC 8785 canonical JSON for protocols that
// require sorted keys.
package canonical
