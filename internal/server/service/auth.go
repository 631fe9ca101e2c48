package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-authgate/internal/authgate"
	"github.com/IvanChernomyrdin/go-authgate/internal/server/config"
	"github.com/IvanChernomyrdin/go-authgate/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-authgate/internal/shared/errors"
)

// AuthService реализует бизнес-логику аутентификации.
//
// Ответственность:
//   - регистрация пользователей
//   - аутентификация (логин)
//   - выпуск access токенов
//   - выдача профиля по субъекту токена
type AuthService struct {
	users UsersRepo

	hasher *authgate.HasherPool
	ag     authgate.Config

	accessTTL time.Duration
}

// TokenData — полезная нагрузка access токена.
type TokenData struct {
	Email string `json:"email"`
}

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, cfg *config.Config) *AuthService {
	return &AuthService{
		users: users,

		hasher:    authgate.NewHasherPool(cfg.Argon2Params(), int64(cfg.Password.MaxConcurrentHashes)),
		ag:        cfg.AuthgateConfig(),
		accessTTL: cfg.Auth.AccessTTL,
	}
}

// Register регистрирует нового пользователя.
//
// Валидация:
//   - email обязателен и должен быть валидным
//   - пароль обязателен и длиной >= 8 символов
//
// Возвращает:
//   - id пользователя
//   - ErrInvalidInput при некорректных данных или ErrAlreadyExists если email уже зарегистрирован
func (s *AuthService) Register(ctx context.Context, email, password string) (uuid.UUID, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)

	if email == "" || password == "" || !regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`).MatchString(email) || len(password) < 8 {
		return uuid.Nil, serr.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return uuid.Nil, serr.ErrInternal
	}

	// в таблице и логах email представлен отпечатком, сам адрес не светим
	return s.users.Create(ctx, email, authgate.Fingerprint(email), hash)
}

// Login аутентифицирует пользователя и выдаёт access токен.
//
// Поведение:
//   - не раскрывает факт существования email
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return "", serr.ErrInvalidInput
	}
	// получаем юзера по email
	userID, hash, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// не палим существование email
		if errors.Is(err, serr.ErrNotFound) {
			return "", serr.ErrInvalidCredentials
		}
		return "", err
	}
	// проверяем пароль
	ok, err := s.hasher.Verify(ctx, password, hash)
	if err != nil {
		return "", serr.ErrInternal
	}
	if !ok {
		return "", serr.ErrInvalidCredentials
	}
	// выпускаем access токен
	access, err := authgate.IssueToken(s.ag, userID.String(), TokenData{Email: email}, int64(s.accessTTL/time.Minute))
	if err != nil {
		return "", serr.ErrInternal
	}

	return access, nil
}

// Me возвращает профиль пользователя по субъекту access токена.
//
// Ошибки:
//   - ErrUnauthorized если субъект не uuid
//   - ErrNotFound если пользователь удалён
func (s *AuthService) Me(ctx context.Context, subject string) (*models.User, error) {
	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, serr.ErrUnauthorized
	}
	return s.users.GetByID(ctx, id)
}
