package nanocore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	seedStoreSaltLen  = 16
	seedStoreNonceLen = 12
	seedStoreMinLen   = seedStoreSaltLen + seedStoreNonceLen

	argon2Time    = 1
	argon2Memory  = 64 * 1024 // KiB
	argon2Threads = 4
	argon2KeyLen  = 32
)

// EncryptSeed seals a WalletSecret into the binary envelope
// salt(16) || nonce(12) || ciphertext, keyed by Argon2id(password, salt).
func EncryptSeed(secret *WalletSecret, password string) ([]byte, *Error) {
	plaintext, jerr := json.Marshal(secret)
	if jerr != nil {
		return nil, newErr(ErrDecrypt, "wrong password or corrupted data")
	}

	salt := make([]byte, seedStoreSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, newErr(ErrDecrypt, "wrong password or corrupted data")
	}
	key := deriveSeedStoreKey(password, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, newErr(ErrDecrypt, "wrong password or corrupted data")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, newErr(ErrDecrypt, "wrong password or corrupted data")
	}
	nonce := make([]byte, seedStoreNonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, newErr(ErrDecrypt, "wrong password or corrupted data")
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	out := make([]byte, 0, seedStoreMinLen+len(ciphertext))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	return out, nil
}

// DecryptSeed opens a seed-store envelope. Any failure — wrong password or
// tampered bytes — collapses to a single opaque Decrypt error, never
// revealing which check failed.
func DecryptSeed(blob []byte, password string) (*WalletSecret, *Error) {
	if len(blob) < seedStoreMinLen {
		return nil, newErr(ErrDecrypt, "wrong password or corrupted data")
	}

	salt := blob[:seedStoreSaltLen]
	nonce := blob[seedStoreSaltLen:seedStoreMinLen]
	ciphertext := blob[seedStoreMinLen:]

	key := deriveSeedStoreKey(password, salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, newErr(ErrDecrypt, "wrong password or corrupted data")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, newErr(ErrDecrypt, "wrong password or corrupted data")
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, newErr(ErrDecrypt, "wrong password or corrupted data")
	}

	var secret WalletSecret
	if err := json.Unmarshal(plaintext, &secret); err != nil {
		return nil, newErr(ErrDecrypt, "wrong password or corrupted data")
	}
	return &secret, nil
}

func deriveSeedStoreKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
}
