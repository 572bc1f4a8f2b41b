// Package validation проверяет пользовательский ввод на границах системы:
// учётные данные, идентификаторы и значения слайсов.
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/iudanet/lifetracker/internal/models"
)

// UsernamePattern определяет допустимый формат username:
// латинские буквы, цифры и подчёркивание, 3-32 символа
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 32
	// MinPasswordLen - минимум символов (не байт) в master password
	MinPasswordLen = 12
)

// ValidateUsername проверяет, что username соответствует требованиям
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)")
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к master password
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if utf8.RuneCountInString(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	return nil
}

// ValidateUserID checks that id is a UUID as issued on registration.
func ValidateUserID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid user id %q: %w", id, err)
	}
	return nil
}

// ValidateSliceKey checks that key belongs to the closed slice set.
func ValidateSliceKey(key string) error {
	if _, err := models.LookupSlice(key); err != nil {
		return err
	}
	return nil
}

// ValidateSliceValue checks the shape of a value about to be stored
// under key: raw slices hold text, structured slices hold an object or
// an array.
func ValidateSliceValue(key string, value any) error {
	def, err := models.LookupSlice(key)
	if err != nil {
		return err
	}

	switch def.Kind {
	case models.KindRaw:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("slice %s expects text, got %T", key, value)
		}
	case models.KindStructured:
		switch value.(type) {
		case map[string]any, []any:
		default:
			return fmt.Errorf("slice %s expects an object or array, got %T", key, value)
		}
	}
	return nil
}
