// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"

	"github.com/IvanChernomyrdin/go-authgate/internal/authgate"
	"github.com/IvanChernomyrdin/go-authgate/internal/shared/logger"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// subjectKey — ключ контекста, под которым хранится субъект токена
// аутентифицированного запроса.
const subjectKey ctxKey = "subject"

// Стабильные причины отказа. Это фиксированные пользовательские строки:
// клиент может на них полагаться, внутренние детали ошибок в них не попадают.
const (
	ReasonMissingHeader    = "Authorization header missing"
	ReasonBadEncoding      = "Invalid Authorization header encoding"
	ReasonBadScheme        = "Authorization header must start with 'Bearer '"
	ReasonEmptyToken       = "Empty token"
	ReasonTokenExpired     = "Token expired"
	ReasonBadSignature     = "Invalid token signature"
	ReasonInvalidAlgorithm = "Invalid algorithm"
	ReasonNotYetValid      = "Token not yet valid"
	ReasonInvalidIssuer    = "Invalid issuer"
	ReasonInvalidAudience  = "Invalid audience"
	ReasonInvalidSubject   = "Invalid subject"
	ReasonInvalidToken     = "Invalid token"
)

// errUnexpectedAlg возвращается из keyfunc при попытке подсунуть токен
// с другим алгоритмом подписи. Нужен, чтобы отличить подмену алгоритма
// от просто битой подписи.
var errUnexpectedAlg = errors.New("unexpected signing algorithm")

// AuthGate проверяет bearer-токены входящих запросов.
//
// Гейт не хранит состояния между запросами: один и тот же экземпляр
// безопасно обслуживает любое число параллельных запросов.
type AuthGate struct {
	cfg authgate.Config
	log *logger.HTTPLogger
}

// NewAuthGate создаёт AuthGate. log может быть nil, тогда отказы не логируются.
func NewAuthGate(cfg authgate.Config, log *logger.HTTPLogger) *AuthGate {
	return &AuthGate{cfg: cfg, log: log}
}

// SubjectFromContext извлекает субъект токена аутентифицированного запроса.
//
// Возвращает:
//   - субъект (claims.sub)
//   - false, если запрос не проходил через AuthGate
func SubjectFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(subjectKey)
	s, ok := v.(string)
	return s, ok
}

// ContextWithSubject кладёт субъект токена в контекст запроса.
// Используется гейтом и тестами хендлеров.
func ContextWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// Decide — чистая функция принятия решения по заголовку Authorization.
//
// Шаги (решение принимается на первом сработавшем):
//  1. заголовок отсутствует -> ReasonMissingHeader;
//  2. значение не валидный UTF-8 -> ReasonBadEncoding;
//  3. нет префикса "Bearer " -> ReasonBadScheme;
//  4. токен пустой -> ReasonEmptyToken;
//  5. декодирование/валидация токена: причина отказа маппится
//     в стабильную строку (см. mapTokenError), успех возвращает claims.
//
// payload разбирается как json.RawMessage: гейту не нужно знать
// конкретный тип данных токена.
func (g *AuthGate) Decide(header string) (*authgate.Claims[json.RawMessage], string) {
	if header == "" {
		return nil, ReasonMissingHeader
	}
	if !utf8.ValidString(header) {
		return nil, ReasonBadEncoding
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, ReasonBadScheme
	}

	token := header[len("Bearer "):]
	if token == "" {
		return nil, ReasonEmptyToken
	}

	claims := &authgate.Claims[json.RawMessage]{}

	// Алгоритм фиксируется в keyfunc, а не через WithValidMethods:
	// так подмена алгоритма даёт отличимую причину ReasonInvalidAlgorithm,
	// а не общую ошибку подписи.
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errUnexpectedAlg
		}
		return []byte(g.cfg.SigningKey), nil
	})
	if err != nil {
		return nil, mapTokenError(err)
	}
	if !parsed.Valid {
		return nil, ReasonInvalidToken
	}

	return claims, ""
}

// Middleware возвращает HTTP middleware для проверки bearer-токенов.
//
// На каждый запрос вызывается Decide:
//   - отказ: фиксированный 401 Unauthorized с текстом причины,
//     обёрнутый handler не вызывается;
//   - успех: запрос передаётся дальше без изменений, субъект токена
//     кладётся в context.Context.
func (g *AuthGate) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, reason := g.Decide(r.Header.Get("Authorization"))
			if reason != "" {
				if g.log != nil {
					g.log.LogAuthReject(r.Method, r.RequestURI, reason)
				}
				http.Error(w, reason, http.StatusUnauthorized)
				return
			}

			ctx := ContextWithSubject(r.Context(), claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// mapTokenError переводит ошибку разбора токена в стабильную причину отказа.
//
// Ветки issuer/audience/subject сейчас недостижимы (эти клеймы в токенах
// не используются), но маппинг сохранён полностью — если проверка появится,
// причины уже зарезервированы. Всё неопознанное схлопывается в
// ReasonInvalidToken, чтобы не протекали внутренние детали.
func mapTokenError(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ReasonTokenExpired
	case errors.Is(err, errUnexpectedAlg):
		return ReasonInvalidAlgorithm
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ReasonBadSignature
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return ReasonNotYetValid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ReasonInvalidIssuer
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ReasonInvalidAudience
	case errors.Is(err, jwt.ErrTokenInvalidSubject):
		return ReasonInvalidSubject
	default:
		// в том числе malformed-структура
		return ReasonInvalidToken
	}
}
