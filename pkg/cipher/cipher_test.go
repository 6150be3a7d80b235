package cipher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notebank/notebank/pkg/cipher"
)

func TestEncryptDecryptString(t *testing.T) {
	t.Parallel()
	key, err := cipher.GenerateKey()
	require.NoError(t, err)
	c, err := cipher.New(key)
	require.NoError(t, err)

	tests := []struct {
		name      string
		plaintext string
	}{
		{"empty string", ""},
		{"phone number", "+2348012345678"},
		{"registration number", "2019/1/70345BT"},
		{"unicode", "Hello 世界 🌍"},
		{"long text", "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ciphertext, err := c.EncryptString(tt.plaintext)
			require.NoError(t, err)

			if tt.plaintext != "" {
				require.NotEqual(t, tt.plaintext, ciphertext)
			}

			decrypted, err := c.DecryptString(ciphertext)
			require.NoError(t, err)
			require.Equal(t, tt.plaintext, decrypted)
		})
	}
}

func TestEncryptNonDeterministic(t *testing.T) {
	t.Parallel()
	key, err := cipher.GenerateKey()
	require.NoError(t, err)
	c, err := cipher.New(key)
	require.NoError(t, err)

	// Random nonce means two encryptions of the same value differ
	ct1, err := c.EncryptString("+2348012345678")
	require.NoError(t, err)
	ct2, err := c.EncryptString("+2348012345678")
	require.NoError(t, err)
	assert.NotEqual(t, ct1, ct2)
}

func TestHashDeterministic(t *testing.T) {
	t.Parallel()
	key, err := cipher.GenerateKey()
	require.NoError(t, err)
	c, err := cipher.New(key)
	require.NoError(t, err)

	h1 := c.Hash("+2348012345678")
	h2 := c.Hash("+2348012345678")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64) // hex-encoded SHA-256

	// Different plaintexts must not collide
	assert.NotEqual(t, h1, c.Hash("+2348012345679"))
}

func TestHashKeyed(t *testing.T) {
	t.Parallel()
	key1, err := cipher.GenerateKey()
	require.NoError(t, err)
	key2, err := cipher.GenerateKey()
	require.NoError(t, err)

	c1, err := cipher.New(key1)
	require.NoError(t, err)
	c2, err := cipher.New(key2)
	require.NoError(t, err)

	// Hashes are keyed: a different master key yields a different hash
	assert.NotEqual(t, c1.Hash("+2348012345678"), c2.Hash("+2348012345678"))
}

func TestNewInvalidKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  []byte
	}{
		{"nil key", nil},
		{"short key", make([]byte, 16)},
		{"long key", make([]byte, 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cipher.New(tt.key)
			assert.ErrorIs(t, err, cipher.ErrInvalidKey)
		})
	}
}

func TestDecryptInvalidCiphertext(t *testing.T) {
	t.Parallel()
	key, err := cipher.GenerateKey()
	require.NoError(t, err)
	c, err := cipher.New(key)
	require.NoError(t, err)

	t.Run("not base64", func(t *testing.T) {
		t.Parallel()
		_, err := c.DecryptString("not-valid-base64!!!")
		assert.ErrorIs(t, err, cipher.ErrInvalidCiphertext)
	})

	t.Run("too short", func(t *testing.T) {
		t.Parallel()
		_, err := c.DecryptString("YWJj") // 3 bytes, shorter than nonce
		assert.ErrorIs(t, err, cipher.ErrInvalidCiphertext)
	})

	t.Run("tampered", func(t *testing.T) {
		t.Parallel()
		ct, err := c.EncryptString("+2348012345678")
		require.NoError(t, err)

		tampered := []byte(ct)
		tampered[len(tampered)-5] ^= 'x'
		_, err = c.DecryptString(string(tampered))
		assert.ErrorIs(t, err, cipher.ErrDecryptionFailed)
	})

	t.Run("wrong key", func(t *testing.T) {
		t.Parallel()
		ct, err := c.EncryptString("+2348012345678")
		require.NoError(t, err)

		otherKey, err := cipher.GenerateKey()
		require.NoError(t, err)
		other, err := cipher.New(otherKey)
		require.NoError(t, err)

		_, err = other.DecryptString(ct)
		assert.ErrorIs(t, err, cipher.ErrDecryptionFailed)
	})
}
