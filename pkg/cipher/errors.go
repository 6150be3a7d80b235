package cipher

import "errors"

var (
	// ErrInvalidKey indicates the master key is not 32 bytes.
	ErrInvalidKey = errors.New("invalid master key: must be 32 bytes")

	// Encryption/decryption errors
	ErrEncryptionFailed  = errors.New("encryption failed")
	ErrDecryptionFailed  = errors.New("decryption failed")
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")

	// ErrKeyDerivationFailed indicates HKDF subkey derivation failed.
	ErrKeyDerivationFailed = errors.New("key derivation failed")
)
