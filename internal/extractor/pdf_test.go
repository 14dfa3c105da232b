package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsReadableText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{
			name:     "statement text",
			text:     "BOURSORAMA BANQUE\nSOLDE EN EUR AU : 01/01/2023   1.234,56\nRelevé de compte\n",
			expected: true,
		},
		{
			name:     "too short",
			text:     "solde compte",
			expected: false,
		},
		{
			name:     "identity encoded garbage",
			text:     strings.Repeat("�", 40),
			expected: false,
		},
		{
			name:     "printable but not a statement",
			text:     strings.Repeat("lorem ipsum dolor sit amet consectetur ", 5),
			expected: false,
		},
		{
			name:     "empty",
			text:     "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isReadableText(tt.text))
		})
	}
}

func TestConvertMissingFile(t *testing.T) {
	_, err := Convert("does/not/exist.pdf")
	assert.Error(t, err)
}
