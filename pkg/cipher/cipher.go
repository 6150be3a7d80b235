package cipher

import (
	"crypto/aes"
	gocipher "crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required master key size (256 bits for AES-256).
	KeySize = 32

	encryptionInfo = "notebank-field-cipher-v1"
	searchHashInfo = "notebank-search-hash-v1"
)

// Cipher encrypts sensitive record fields at rest and derives a deterministic
// search hash so encrypted records can be located by equality without
// decryption. The encryption key and the hash key are both derived from one
// master key via HKDF with distinct info strings, so ciphertexts and search
// hashes never share key material.
type Cipher struct {
	encKey  []byte
	hashKey []byte
}

// New creates a Cipher from a 32-byte master key.
func New(masterKey []byte) (*Cipher, error) {
	if len(masterKey) != KeySize {
		return nil, ErrInvalidKey
	}

	encKey, err := deriveKey(masterKey, encryptionInfo)
	if err != nil {
		return nil, err
	}
	hashKey, err := deriveKey(masterKey, searchHashInfo)
	if err != nil {
		return nil, err
	}

	return &Cipher{encKey: encKey, hashKey: hashKey}, nil
}

// EncryptString encrypts plaintext with AES-256-GCM and returns
// base64-encoded nonce+ciphertext. It fails closed: on any error the
// returned string is empty, never the plaintext.
func (c *Cipher) EncryptString(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.encKey)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	aesGCM, err := gocipher.NewGCM(block)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	// Nonce is prepended to the ciphertext for storage
	ciphertext := aesGCM.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptString decrypts a base64-encoded ciphertext produced by EncryptString.
func (c *Cipher) DecryptString(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errors.Join(ErrInvalidCiphertext, err)
	}

	block, err := aes.NewCipher(c.encKey)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	aesGCM, err := gocipher.NewGCM(block)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	nonceSize := aesGCM.NonceSize()
	if len(raw) < nonceSize {
		return "", ErrInvalidCiphertext
	}

	nonce, data := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := aesGCM.Open(nil, nonce, data, nil)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}

// Hash derives the deterministic search hash for a plaintext value:
// hex-encoded HMAC-SHA256 under the derived hash key. The same plaintext
// always yields the same hash, and there is no inverse operation.
func (c *Cipher) Hash(plaintext string) string {
	mac := hmac.New(sha256.New, c.hashKey)
	mac.Write([]byte(plaintext))
	return hex.EncodeToString(mac.Sum(nil))
}

// GenerateKey creates a new random 32-byte master key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// deriveKey expands the master key into a purpose-bound subkey using
// HKDF-SHA256 with the info string providing domain separation.
func deriveKey(masterKey []byte, info string) ([]byte, error) {
	hkdfReader := hkdf.New(sha256.New, masterKey, nil, []byte(info))

	derived := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdfReader, derived); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	return derived, nil
}
