// Package pemutil converts between raw bytes, Base64 text and PEM-armored blocks.
//
// Decoding is deliberately lenient about layout: keys pasted with odd line
// breaks or signatures copied in URL-safe form are accepted, while anything
// outside the Base64 alphabet is rejected.
package pemutil
