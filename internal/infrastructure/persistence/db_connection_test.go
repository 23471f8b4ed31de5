//go:build unit
// +build unit

package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "test_0a1b2c", `"test_0a1b2c"`},
		{"mixed case kept", "Signer", `"Signer"`},
		{"embedded quote doubled", `sig"ner`, `"sig""ner"`},
		{"statement terminator stays inside", "x; DROP TABLE y", `"x; DROP TABLE y"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, quoteIdentifier(tt.input))
		})
	}
}
