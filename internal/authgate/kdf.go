package authgate

import "crypto/sha256"

// KeySize — размер симметричного ключа (байты).
// Для AES-256 используется 32 байта.
const KeySize = 32

// DeriveKey выводит 32-байтовый ключ AES-256 из строкового секрета.
//
// Используется SHA-256 от UTF-8 байтов секрета: функция детерминирована,
// один и тот же секрет всегда даёт один и тот же ключ. Это обязательное
// свойство — иначе после рестарта процесса расшифровать старые данные
// было бы невозможно.
//
// Соль здесь не нужна: секрет один на процесс, а уникальность шифртекста
// обеспечивает случайный nonce на каждый вызов Encrypt.
func DeriveKey(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}
