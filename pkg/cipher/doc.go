// Package cipher protects sensitive profile fields (phone numbers,
// registration numbers) at rest and makes encrypted records searchable by
// equality without decryption.
//
// A Cipher derives two independent 32-byte subkeys from one master key using
// HKDF-SHA-256 with distinct info strings: one for AES-256-GCM field
// encryption, one for keyed search hashing. On successful encryption the
// nonce is prepended to the ciphertext so stored values are self-contained.
//
// # Search hashes
//
// Hash produces a hex-encoded HMAC-SHA-256 of the plaintext under the hash
// subkey. It is deterministic — the same plaintext always yields the same
// hash — so a record can be located by recomputing the hash of a query value
// and comparing it against the stored hash column. It is one-way: there is no
// operation that recovers a plaintext from its hash.
//
// # Usage
//
//	key, _ := cipher.GenerateKey() // generate once, store securely
//	c, err := cipher.New(key)
//	if err != nil {
//	    // handle error
//	}
//
//	ct, err := c.EncryptString("+2348012345678")
//	hash := c.Hash("+2348012345678")
//
// # Error Handling
//
// All fallible operations return errors wrapping a package sentinel such as
// ErrEncryptionFailed or ErrInvalidCiphertext; match with errors.Is. Failures
// are closed: an error result never carries plaintext.
package cipher
