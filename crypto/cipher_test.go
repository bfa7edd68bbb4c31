package crypto

import (
	"encoding/base64"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageCipherRoundTrip(t *testing.T) {
	mc := NewMessageCipher("correct horse")

	for _, msg := range []string{"", "Hi", "héllo 世界"} {
		encoded, err := mc.Encrypt([]byte(msg))
		require.NoError(t, err)
		assert.True(t, utf8.ValidString(encoded))

		plain, err := mc.Decrypt(encoded)
		require.NoError(t, err)
		assert.Equal(t, msg, string(plain))
	}
}

func TestMessageCipherRandomised(t *testing.T) {
	mc := NewMessageCipher("k")
	a, err := mc.Encrypt([]byte("same"))
	require.NoError(t, err)
	b, err := mc.Encrypt([]byte("same"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestMessageCipherDecryptFailures(t *testing.T) {
	encoded, err := NewMessageCipher("right").Encrypt([]byte("secret"))
	require.NoError(t, err)

	t.Run("wrong passkey", func(t *testing.T) {
		_, err := NewMessageCipher("wrong").Decrypt(encoded)
		assert.ErrorIs(t, err, ErrDecryptFailed)
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := NewMessageCipher("right").Decrypt("%%%")
		assert.ErrorIs(t, err, ErrDecryptFailed)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := NewMessageCipher("right").Decrypt(base64.StdEncoding.EncodeToString([]byte("short")))
		assert.ErrorIs(t, err, ErrDecryptFailed)
	})

	t.Run("tampered", func(t *testing.T) {
		raw, err := base64.StdEncoding.DecodeString(encoded)
		require.NoError(t, err)
		raw[len(raw)-1] ^= 0x01
		_, err = NewMessageCipher("right").Decrypt(base64.StdEncoding.EncodeToString(raw))
		assert.ErrorIs(t, err, ErrDecryptFailed)
	})
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, ValidateKey("passkey"))
	assert.Error(t, ValidateKey(""))
	assert.NoError(t, ValidateKey(strings.Repeat("k", 256)))
	assert.Error(t, ValidateKey(strings.Repeat("k", 257)))
}
