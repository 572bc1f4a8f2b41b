package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrInvalidCredential возвращается при несовпадении учётных данных
var ErrInvalidCredential = errors.New("invalid credential")

// серверные параметры: хеш хранится в базе, поэтому дешевле клиентских
const (
	credentialTime    = 1
	credentialMemory  = 19 * 1024
	credentialThreads = 1
	credentialPrefix  = "argon2id"
)

// HashAuthKey возвращает hex SHA-256 от auth key. Этот хеш клиент
// отправляет на сервер вместо самого ключа.
func HashAuthKey(authKey []byte) (string, error) {
	if len(authKey) == 0 {
		return "", fmt.Errorf("auth key cannot be empty")
	}
	sum := sha256.Sum256(authKey)
	return hex.EncodeToString(sum[:]), nil
}

// HashCredential hashes the client-supplied auth key hash for storage.
// Format: argon2id$<salt b64>$<hash b64>.
func HashCredential(authKeyHash string) (string, error) {
	if authKeyHash == "" {
		return "", fmt.Errorf("auth key hash cannot be empty")
	}
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	sum := argon2.IDKey([]byte(authKeyHash), salt, credentialTime, credentialMemory, credentialThreads, KeySize)
	return strings.Join([]string{
		credentialPrefix,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	}, "$"), nil
}

// VerifyCredential checks authKeyHash against a value produced by
// HashCredential in constant time.
func VerifyCredential(authKeyHash, stored string) error {
	parts := strings.Split(stored, "$")
	if len(parts) != 3 || parts[0] != credentialPrefix {
		return fmt.Errorf("malformed stored credential")
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return fmt.Errorf("malformed credential salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return fmt.Errorf("malformed credential hash: %w", err)
	}

	got := argon2.IDKey([]byte(authKeyHash), salt, credentialTime, credentialMemory, credentialThreads, uint32(len(want)))
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrInvalidCredential
	}
	return nil
}
