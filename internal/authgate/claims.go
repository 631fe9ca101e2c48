package authgate

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims — полезная нагрузка токена с произвольными данными типа T.
//
// Поля сериализуются в стандартные JWT-клеймы:
//   - sub: субъект (кому выдан токен)
//   - iat: время выпуска (unix-секунды)
//   - exp: время истечения (unix-секунды)
//   - data: произвольные данные вызывающей стороны
//
// T может быть любым типом, который симметрично проходит через
// encoding/json. Для проверки токена без знания конкретного типа
// используется Claims[json.RawMessage].
//
// Claims создаются при выпуске токена и никогда не мутируются.
type Claims[T any] struct {
	Subject   string `json:"sub"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	Data      T      `json:"data"`
}

// NewClaims собирает Claims с временем жизни lifetime от момента now.
//
// Инвариант: ExpiresAt всегда равен IssuedAt + lifetime. Отрицательный
// lifetime даёт уже истёкший токен (используется в тестах).
func NewClaims[T any](subject string, data T, now time.Time, lifetime time.Duration) Claims[T] {
	return Claims[T]{
		Subject:   subject,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(lifetime).Unix(),
		Data:      data,
	}
}

// Ниже — реализация интерфейса jwt.Claims (golang-jwt/v5),
// чтобы Claims можно было передавать напрямую в NewWithClaims/ParseWithClaims.

// GetExpirationTime возвращает exp как jwt.NumericDate.
func (c Claims[T]) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.ExpiresAt, 0)), nil
}

// GetIssuedAt возвращает iat как jwt.NumericDate.
func (c Claims[T]) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.IssuedAt, 0)), nil
}

// GetNotBefore возвращает nil: клейм nbf в токенах не используется.
func (c Claims[T]) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

// GetIssuer возвращает пустую строку: клейм iss в токенах не используется.
func (c Claims[T]) GetIssuer() (string, error) {
	return "", nil
}

// GetSubject возвращает sub.
func (c Claims[T]) GetSubject() (string, error) {
	return c.Subject, nil
}

// GetAudience возвращает nil: клейм aud в токенах не используется.
func (c Claims[T]) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}
