package stego

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesToBits(t *testing.T) {
	assert.Empty(t, bytesToBits(nil))
	assert.Equal(t, []byte{0, 1, 0, 0, 1, 0, 0, 0}, bytesToBits([]byte("H")))
	assert.Equal(t, []byte{1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 1}, bytesToBits([]byte{0xFF, 0x01}))
}

func TestBitsToBytes(t *testing.T) {
	t.Run("aligned", func(t *testing.T) {
		out, err := bitsToBytes([]byte{0, 1, 0, 0, 1, 0, 0, 0, 0, 1, 1, 0, 1, 0, 0, 1})
		require.NoError(t, err)
		assert.Equal(t, "Hi", string(out))
	})

	t.Run("empty", func(t *testing.T) {
		out, err := bitsToBytes(nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("partial byte", func(t *testing.T) {
		_, err := bitsToBytes([]byte{1, 0, 1})
		assert.ErrorIs(t, err, ErrUnalignedBits)
	})

	t.Run("inverse of bytesToBits", func(t *testing.T) {
		in := []byte("héllo, 世界")
		out, err := bitsToBytes(bytesToBits(in))
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})
}

func TestUintBits(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
		width int
	}{
		{"zero", 0, 32},
		{"sixteen", 16, 32},
		{"max header", 0xFFFFFFFF, 32},
		{"mixed", 0xA5A5_0F0F, 32},
		{"narrow", 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bits := uintToBits(tt.value, tt.width)
			assert.Len(t, bits, tt.width)
			assert.Equal(t, tt.value, bitsToUint(bits))
		})
	}

	assert.Equal(t, []byte{0, 0, 0, 1, 0, 0, 0, 0}, uintToBits(16, 8))
}
