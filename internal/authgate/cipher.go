package authgate

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrMalformedInput возвращается, если входная строка Decrypt — не base64
	// или декодированные данные короче 12 байт (nonce отсутствует).
	ErrMalformedInput = errors.New("malformed encrypted input")

	// ErrAuthFailed возвращается, если GCM-тег не сошёлся:
	// данные подделаны либо расшифровываются не тем ключом.
	// Детали ошибки намеренно скрываются.
	ErrAuthFailed = errors.New("decryption failed (tampered data or wrong key)")

	// ErrInvalidEncoding возвращается, если расшифрованные байты
	// не являются корректной UTF-8 строкой.
	ErrInvalidEncoding = errors.New("decrypted data is not valid utf-8")
)

// NonceSize — размер nonce для AES-GCM.
// 12 байт — стандартный размер для GCM.
const NonceSize = 12

// Encrypt шифрует plaintext ключом, выведенным из cfg.EncryptionKey,
// и возвращает транспортную строку base64(nonce ‖ ciphertext ‖ tag).
//
// На каждый вызов генерируется свежий случайный nonce: повтор nonce на
// одном ключе ломает конфиденциальность GCM, поэтому два шифрования
// одной и той же строки всегда дают разные blob'ы.
//
// Ошибки (сбой ГСЧ, инициализация AES) возвращаются вызывающей стороне
// как восстановимые.
func Encrypt(cfg Config, plaintext string) (string, error) {
	gcm, err := newGCM(cfg)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal дописывает ciphertext+tag сразу после nonce
	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt разбирает blob, сформированный Encrypt, и возвращает исходную строку.
//
// Алгоритм:
//  1. base64-декодирование (ошибка -> ErrMalformedInput);
//  2. проверка минимальной длины: первые 12 байт — nonce (иначе ErrMalformedInput);
//  3. AES-256-GCM.Open — несошедшийся тег даёт ErrAuthFailed,
//     подменённый plaintext невозможен по построению;
//  4. проверка, что результат — валидный UTF-8 (иначе ErrInvalidEncoding).
func Decrypt(cfg Config, blob string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", ErrMalformedInput
	}
	if len(data) < NonceSize {
		return "", ErrMalformedInput
	}

	nonce, ciphertext := data[:NonceSize], data[NonceSize:]

	gcm, err := newGCM(cfg)
	if err != nil {
		return "", err
	}

	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrAuthFailed
	}

	if !utf8.Valid(plain) {
		return "", ErrInvalidEncoding
	}
	return string(plain), nil
}

// newGCM собирает AEAD поверх ключа, выведенного из cfg.EncryptionKey.
func newGCM(cfg Config) (cipher.AEAD, error) {
	block, err := aes.NewCipher(DeriveKey(cfg.EncryptionKey))
	if err != nil {
		return nil, fmt.Errorf("aes: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("gcm: %w", err)
	}
	return gcm, nil
}
