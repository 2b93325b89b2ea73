package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFormID(t *testing.T) {
	assert.Equal(t, "00000007", FormatFormID(0x7))
	assert.Equal(t, "FE001ABC", FormatFormID(0xFE001ABC))
}

func TestParseFormID(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"00000007", 0x7},
		{"0x0001A2B3", 0x1A2B3},
		{"0XFE001ABC", 0xFE001ABC},
		{" 12 ", 0x12},
	}
	for _, tt := range tests {
		got, err := ParseFormID(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormID("")
	assert.Error(t, err)
	_, err = ParseFormID("xyz")
	assert.Error(t, err)
	_, err = ParseFormID("1FFFFFFFF")
	assert.Error(t, err)
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool([]byte("yes")))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(1))
}
