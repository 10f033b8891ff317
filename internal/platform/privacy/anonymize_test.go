package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "ipv4", input: "192.168.1.47", expected: "192.168.1.0"},
		{name: "ipv4 with port", input: "10.1.2.3:54321", expected: "10.1.2.0"},
		{name: "ipv6", input: "2001:db8:85a3::8a2e:370:7334", expected: "2001:0db8:85a3::"},
		{name: "ipv6 with port", input: "[::1]:8080", expected: "0000:0000:0000::"},
		{name: "empty", input: "", expected: "unknown"},
		{name: "garbage", input: "not-an-ip", expected: "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AnonymizeIP(tt.input))
		})
	}
}

func TestMaskNationalID(t *testing.T) {
	assert.Equal(t, "800101-******", MaskNationalID("800101"))
	assert.Equal(t, "******", MaskNationalID(" "))
}

func TestHashNationalID(t *testing.T) {
	h := HashNationalID("800101", "1234567")

	assert.Len(t, h, 16)
	assert.Equal(t, h, HashNationalID("800101", "1234567"))
	assert.NotEqual(t, h, HashNationalID("800101", "2234567"))
	assert.NotContains(t, h, "800101")
	assert.Empty(t, HashNationalID("", ""))
}
