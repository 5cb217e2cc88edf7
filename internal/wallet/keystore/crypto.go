package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

const (
	saltSize = 32
	ivSize   = 16 // AES-128-CTR
)

// seal encrypts plaintext into a keystore v3 envelope:
// scrypt-derived key, AES-128-CTR, SHA-256 MAC over key[16:32]+ciphertext.
func seal(plaintext string, password string, params ScryptParams) (*CipherJSON, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "failed to generate salt")
	}

	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, errors.Wrap(err, "failed to generate IV")
	}

	derivedKey, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key")
	}

	ciphertext, err := xorCTR(derivedKey[:16], iv, []byte(plaintext))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt")
	}

	mac := computeMAC(derivedKey[16:32], ciphertext)

	envelope := &CipherJSON{
		Version: 3,
		ID:      uuid.New().String(),
	}
	envelope.Crypto.Ciphertext = hex.EncodeToString(ciphertext)
	envelope.Crypto.CipherParams.IV = hex.EncodeToString(iv)
	envelope.Crypto.Cipher = "aes-128-ctr"
	envelope.Crypto.KDF = "scrypt"
	envelope.Crypto.KDFParams.DKLen = params.DKLen
	envelope.Crypto.KDFParams.Salt = hex.EncodeToString(salt)
	envelope.Crypto.KDFParams.N = params.N
	envelope.Crypto.KDFParams.R = params.R
	envelope.Crypto.KDFParams.P = params.P
	envelope.Crypto.MAC = hex.EncodeToString(mac)

	return envelope, nil
}

// open decrypts a keystore v3 envelope, verifying the MAC first.
func open(envelope *CipherJSON, password string) (string, error) {
	salt, err := hex.DecodeString(envelope.Crypto.KDFParams.Salt)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode salt")
	}

	iv, err := hex.DecodeString(envelope.Crypto.CipherParams.IV)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode IV")
	}

	ciphertext, err := hex.DecodeString(envelope.Crypto.Ciphertext)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode ciphertext")
	}

	expectedMAC, err := hex.DecodeString(envelope.Crypto.MAC)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode MAC")
	}

	derivedKey, err := scrypt.Key(
		[]byte(password),
		salt,
		envelope.Crypto.KDFParams.N,
		envelope.Crypto.KDFParams.R,
		envelope.Crypto.KDFParams.P,
		envelope.Crypto.KDFParams.DKLen,
	)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive key")
	}

	mac := computeMAC(derivedKey[16:32], ciphertext)
	if subtle.ConstantTimeCompare(mac, expectedMAC) != 1 {
		return "", errors.New("invalid password: MAC mismatch")
	}

	plaintext, err := xorCTR(derivedKey[:16], iv, ciphertext)
	if err != nil {
		return "", errors.Wrap(err, "failed to decrypt")
	}

	return string(plaintext), nil
}

// xorCTR runs AES-128-CTR over src; encryption and decryption are the
// same operation.
func xorCTR(key []byte, iv []byte, src []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	dst := make([]byte, len(src))
	cipher.NewCTR(block, iv).XORKeyStream(dst, src)

	return dst, nil
}

func computeMAC(key []byte, ciphertext []byte) []byte {
	hasher := sha256.New()
	hasher.Write(key)
	hasher.Write(ciphertext)

	return hasher.Sum(nil)
}
