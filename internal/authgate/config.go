// Package authgate содержит криптографическое ядро сервиса аутентификации:
//   - выпуск и проверку подписанных JWT-токенов (HS256);
//   - симметричное аутентифицированное шифрование строк (AES-256-GCM);
//   - хэширование и проверку паролей (argon2id);
//   - быстрый fingerprint для не-секретных данных (SHA-256).
//
// Все операции — чистые функции над иммутабельным Config: после создания
// конфиг только читается, поэтому его можно безопасно разделять между
// любым числом горутин без блокировок.
//
// Важно про ключи: подпись токенов использует байты SigningKey напрямую
// как ключ HMAC, а шифрование сначала прогоняет EncryptionKey через
// DeriveKey (SHA-256). Это сознательная асимметрия: унификация сломала бы
// подпись уже выданных токенов.
package authgate

import "errors"

var (
	// ErrEmptySigningKey возвращается, если ключ подписи токенов не задан.
	ErrEmptySigningKey = errors.New("signing key is empty")
	// ErrEmptyEncryptionKey возвращается, если ключ шифрования не задан.
	ErrEmptyEncryptionKey = errors.New("encryption key is empty")
)

// Config — пара секретов, общая для всех операций пакета.
//
// Поля:
//   - SigningKey: секрет для подписи JWT (HS256). Байты строки используются
//     как ключ HMAC без преобразований.
//   - EncryptionKey: секрет для шифрования. Перед использованием хэшируется
//     в 32-байтовый ключ AES-256 (см. DeriveKey).
//
// Config создаётся один раз при старте приложения и далее не меняется.
type Config struct {
	SigningKey    string
	EncryptionKey string
}

// Validate проверяет, что оба секрета заданы.
//
// Требования к длине ключа подписи (>= 32 символов) проверяет конфиг
// сервера, здесь только минимальный контракт пакета.
func (c Config) Validate() error {
	if c.SigningKey == "" {
		return ErrEmptySigningKey
	}
	if c.EncryptionKey == "" {
		return ErrEmptyEncryptionKey
	}
	return nil
}
