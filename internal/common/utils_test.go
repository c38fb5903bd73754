package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLeadingFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"18.5", 18.5, true},
		{" 19,5 °C", 19.5, true},
		{"21°", 21, true},
		{"-3", -3, true},
		{".5", 0.5, true},
		{"n.a.", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseLeadingFloat(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
