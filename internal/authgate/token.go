package authgate

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Единственный поддерживаемый алгоритм подписи.
// Мультиалгоритмность сознательно не поддерживается: меньше поверхность
// для атак вида "alg confusion".
var signingMethod = jwt.SigningMethodHS256

// IssueToken выпускает подписанный токен для субъекта subject
// с произвольными данными data и временем жизни в минутах.
//
// Поведение:
//   - iat = now, exp = now + lifetimeMinutes*60;
//   - claims сериализуются в JSON и подписываются HMAC-SHA256,
//     ключ — байты cfg.SigningKey как есть (без derivation);
//   - ошибка возможна только при сбое сериализации и считается
//     нештатной ситуацией, а не нормальной веткой.
func IssueToken[T any](cfg Config, subject string, data T, lifetimeMinutes int64) (string, error) {
	claims := NewClaims(subject, data, time.Now(), time.Duration(lifetimeMinutes)*time.Minute)

	t := jwt.NewWithClaims(signingMethod, claims)
	signed, err := t.SignedString([]byte(cfg.SigningKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken проверяет подпись и срок действия токена.
//
// Возвращает true только если токен структурно корректен, подпись
// совпадает и exp ещё не наступил. Любая причина отказа схлопывается
// в false — по этому вызову различить "просрочен" и "подделан" нельзя
// (для различения причин см. middleware.AuthGate).
func VerifyToken[T any](cfg Config, token string) bool {
	_, err := ParseToken[T](cfg, token)
	return err == nil
}

// IsTokenExpired сообщает, истёк ли срок действия токена.
//
// Задокументированная особенность: токен, который вообще не удалось
// распарсить или проверить, тоже считается истёкшим. Если нужно отличать
// "просрочен" от "невалиден" — используйте ParseToken и смотрите ошибку.
func IsTokenExpired[T any](cfg Config, token string) bool {
	claims, err := ParseToken[T](cfg, token)
	if err != nil {
		// невалидный токен считаем просроченным
		return true
	}
	return claims.ExpiresAt < time.Now().Unix()
}

// ParseToken разбирает и валидирует токен, возвращая его claims.
//
// Валидация:
//   - допускается только HS256 (см. signingMethod);
//   - подпись проверяется байтами cfg.SigningKey;
//   - exp проверяется стандартным валидатором jwt.
//
// Ошибки возвращаются как есть (jwt.ErrTokenExpired,
// jwt.ErrTokenSignatureInvalid и т.д.), чтобы вызывающая сторона могла
// сопоставить причину отказа через errors.Is.
func ParseToken[T any](cfg Config, token string) (*Claims[T], error) {
	claims := &Claims[T]{}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{signingMethod.Name}))
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
