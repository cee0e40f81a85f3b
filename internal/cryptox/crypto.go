// Package cryptox implements the key derivation and authenticated encryption
// used to protect provider API keys at rest.
//
// Keys are derived from a human-supplied master passphrase with PBKDF2-SHA256
// and sealed with AES-256-GCM. A fresh random 12-byte nonce is drawn for every
// encryption; the nonce travels with the ciphertext, so nothing besides the
// passphrase has to be remembered to decrypt.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// KeyIterations is the PBKDF2 iteration count. Chosen high enough that brute
// forcing a stolen ciphertext is expensive on commodity hardware.
const KeyIterations = 150_000

const keyLen = 32
const nonceLen = 12

// DeriveKey stretches a passphrase into a 256-bit AES key.
//
// The salt does not need to be secret, only stable: the same
// (passphrase, salt) pair always yields the same key.
func DeriveKey(passphrase, salt []byte) []byte {
	return pbkdf2.Key(passphrase, salt, KeyIterations, keyLen, sha256.New)
}

// EncryptString seals plaintext under key with AES-GCM and encodes the result
// as "base64(nonce):base64(ciphertext)". The nonce is freshly drawn from
// crypto/rand on every call; reusing a nonce under the same key would break
// confidentiality, so there is no way to supply one from outside.
func EncryptString(plaintext string, key []byte) (string, error) {
	nonce := make([]byte, nonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	sealed := aesgcm.Seal(nil, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(nonce) + ":" +
		base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptString reverses EncryptString. Any failure — malformed encoding, bad
// base64, truncated nonce, GCM authentication mismatch (wrong passphrase or
// tampered data) — reports ok=false. Callers cannot distinguish "wrong
// passphrase" from "corrupted record", and that is intentional.
func DecryptString(encoded string, key []byte) (string, bool) {
	nonceB64, sealedB64, found := strings.Cut(encoded, ":")
	if !found {
		return "", false
	}

	nonce, err := base64.StdEncoding.DecodeString(nonceB64)
	if err != nil || len(nonce) != nonceLen {
		return "", false
	}
	sealed, err := base64.StdEncoding.DecodeString(sealedB64)
	if err != nil {
		return "", false
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", false
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", false
	}

	plaintext, err := aesgcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", false
	}
	return string(plaintext), true
}
