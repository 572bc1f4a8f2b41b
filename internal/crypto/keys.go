// Package crypto содержит деривацию ключей из master password (Argon2id),
// хеширование учётных данных и AES-GCM для хранения сессии на диске.
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// SaltSize - размер публичной соли в байтах
const SaltSize = 32

// KeySize - длина производных ключей
const KeySize = 32

// Контексты деривации: ключи независимы друг от друга
const (
	authContext    = "lifetracker/auth"
	sessionContext = "lifetracker/session"
)

// Params - стоимость Argon2id
type Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultParams используются клиентом
var DefaultParams = Params{Time: 1, Memory: 64 * 1024, Threads: 4}

// Keys содержит производные ключи пользователя
type Keys struct {
	AuthKey    []byte // доказательство знания пароля для сервера
	SessionKey []byte // шифрует токены сессии в локальной базе
}

// GenerateSalt генерирует криптографически случайную соль
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// GenerateSaltBase64 returns a fresh salt in standard base64.
func GenerateSaltBase64() (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// DeriveKeys derives the auth and session keys from the master password.
// The username is mixed in so equal passwords of different users never
// produce equal keys.
func DeriveKeys(masterPassword, username string, salt []byte, p Params) (*Keys, error) {
	if masterPassword == "" {
		return nil, fmt.Errorf("master password cannot be empty")
	}
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("salt must be %d bytes, got %d", SaltSize, len(salt))
	}

	derive := func(context string) []byte {
		input := make([]byte, 0, len(masterPassword)+len(username)+len(context)+2)
		input = append(input, masterPassword...)
		input = append(input, 0)
		input = append(input, username...)
		input = append(input, 0)
		input = append(input, context...)
		return argon2.IDKey(input, salt, p.Time, p.Memory, p.Threads, KeySize)
	}

	return &Keys{
		AuthKey:    derive(authContext),
		SessionKey: derive(sessionContext),
	}, nil
}

// DeriveKeysFromBase64Salt генерирует ключи из base64-соли
func DeriveKeysFromBase64Salt(masterPassword, username, saltBase64 string, p Params) (*Keys, error) {
	salt, err := base64.StdEncoding.DecodeString(saltBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	return DeriveKeys(masterPassword, username, salt, p)
}
