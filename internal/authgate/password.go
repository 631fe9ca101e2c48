// Хэширование паролей и fingerprint
package authgate

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

// Argon2Params — параметры адаптивного хэширования паролей (argon2id).
//
// Поля:
//   - Time: количество итераций (CPU cost)
//   - MemoryKiB: объём памяти в KiB (memory cost)
//   - Threads: число потоков
//   - KeyLen: длина хэша в байтах
//   - SaltLen: длина соли в байтах
type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
	SaltLen   uint32
}

// DefaultArgon2Params возвращает параметры по умолчанию: достаточно дорого
// для перебора офлайн, но приемлемо по времени на обычном сервере.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:      3,
		MemoryKiB: 64 * 1024, // 64 MiB
		Threads:   2,
		KeyLen:    32,
		SaltLen:   16,
	}
}

// HashPassword возвращает строку формата:
// argon2id$v=19$m=65536,t=3,p=2$<salt_b64>$<hash_b64>
//
// Формат самодостаточен: алгоритм, версия, стоимость и соль зашиты в строку,
// поэтому VerifyPassword не нуждается во внешних параметрах. Соль свежая на
// каждый вызов — два хэша одного пароля всегда различаются.
func HashPassword(password string, p Argon2Params) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("empty password")
	}

	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, p.KeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	encoded := fmt.Sprintf(
		"argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		p.MemoryKiB, p.Time, p.Threads,
		b64Salt, b64Hash,
	)
	return encoded, nil
}

// VerifyPassword пересчитывает хэш с солью и стоимостью из encoded
// и сравнивает за константное время.
//
// Возвращает false и ошибку формата для битой строки хэша;
// для просто неверного пароля — false без ошибки, это не исключение.
func VerifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 {
		return false, errors.New("invalid hash format")
	}

	// parts[0] = argon2id
	// parts[1] = v=19
	// parts[2] = m=...,t=...,p=...
	// parts[3] = salt
	// parts[4] = hash

	if parts[0] != "argon2id" {
		return false, errors.New("unsupported hash algorithm")
	}

	var memory uint32
	var time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, errors.New("invalid params format")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false, errors.New("invalid salt")
	}

	wantHash, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, errors.New("invalid hash")
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(wantHash)))
	return subtle.ConstantTimeCompare(got, wantHash) == 1, nil
}

// Fingerprint возвращает hex(SHA-256) от input.
//
// Быстрый детерминированный хэш для НЕ-секретных данных: ключи дедупликации,
// идентификаторы содержимого и т.п. Для паролей использовать нельзя — здесь
// нет ни соли, ни стоимости (для паролей см. HashPassword).
func Fingerprint(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
