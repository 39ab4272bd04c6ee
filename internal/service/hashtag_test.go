package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHashtags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"plain list", "tech, news", []string{"tech", "news"}},
		{"duplicates collapse", "a, a, b", []string{"a", "b"}},
		{"whitespace trimmed", "  go ,  sql  ", []string{"go", "sql"}},
		{"empty entries dropped", "a,,b,", []string{"a", "b"}},
		{"missing field is a no-op", "", []string{}},
		{"only separators", " , ,", []string{}},
		{"case sensitive as stored", "Go, go", []string{"Go", "go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHashtags(tt.raw))
		})
	}
}
