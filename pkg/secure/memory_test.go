package secure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZero(t *testing.T) {
	data := []byte("sensitive data to be zeroed")
	original := make([]byte, len(data))
	copy(original, data)

	Zero(data)

	for _, b := range data {
		assert.Equal(t, byte(0), b)
	}
	assert.NotEqual(t, original, data)
}

func TestZeroEmpty(t *testing.T) {
	Zero(nil)
	Zero([]byte{})
}

func TestClearBytes(t *testing.T) {
	data := []byte("recovered entropy")
	backing := data

	ClearBytes(&data)

	assert.Nil(t, data)
	for _, b := range backing {
		assert.Equal(t, byte(0), b)
	}

	// Nil pointer and nil slice are no-ops.
	ClearBytes(nil)
	var empty []byte
	ClearBytes(&empty)
	assert.Nil(t, empty)
}

func TestClearString(t *testing.T) {
	s := "twelve word recovery phrase lives here"
	ClearString(&s)
	assert.Empty(t, s)

	ClearString(nil)
}

func TestConstantTimeCompare(t *testing.T) {
	tests := []struct {
		name  string
		x     []byte
		y     []byte
		equal bool
	}{
		{"Equal", []byte("same bytes"), []byte("same bytes"), true},
		{"Different content", []byte("same bytes"), []byte("diff bytes"), false},
		{"Different length", []byte("short"), []byte("much longer"), false},
		{"Both empty", []byte{}, []byte{}, true},
		{"One empty", []byte{}, []byte("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, ConstantTimeCompare(tt.x, tt.y))
		})
	}
}

func TestSecureRandom(t *testing.T) {
	a, err := SecureRandom(32)
	require.NoError(t, err)
	assert.Len(t, a, 32)

	b, err := SecureRandom(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	empty, err := SecureRandom(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
