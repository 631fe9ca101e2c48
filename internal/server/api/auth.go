// HTTP-хендлеры регистрации, логина и профиля
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/IvanChernomyrdin/go-authgate/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-authgate/internal/shared/errors"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// RegisterRequest описывает тело запроса регистрации пользователя.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse описывает успешный ответ регистрации.
type RegisterResponse struct {
	UserID string `json:"user_id"`
}

// LoginRequest описывает тело запроса входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse описывает успешный ответ входа пользователя.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// MeResponse описывает профиль текущего пользователя.
type MeResponse struct {
	UserID           string    `json:"user_id"`
	Email            string    `json:"email"`
	EmailFingerprint string    `json:"email_fingerprint"`
	CreatedAt        time.Time `json:"created_at"`
}

// Register обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 201 Created: регистрация успешна;
//   - 400 Bad Request: неверный JSON или невалидные входные данные;
//   - 409 Conflict: пользователь уже существует;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Register user
// @Description  Creates a new user account. Password is hashed with argon2id before storage.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Register request"
// @Success      201 {object} RegisterResponse
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      409 {object} ErrorResponse "User already exists"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, serr.ErrBadJSON.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.Svc.Auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			http.Error(w, serr.ErrInvalidInput.Error(), http.StatusBadRequest)
		case errors.Is(err, serr.ErrAlreadyExists):
			http.Error(w, serr.ErrAlreadyExists.Error(), http.StatusConflict)
		default:
			h.Log.Logger.Sugar().Error("register failed")
			http.Error(w, serr.ErrInternal.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(RegisterResponse{UserID: id.String()})
}

// Login обрабатывает вход пользователя и выдачу access токена.
//
// Ответы:
//   - 200 OK: успешный вход;
//   - 400 Bad Request: неверный JSON или невалидные входные данные;
//   - 401 Unauthorized: неверные учётные данные;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Login user
// @Description  Authenticates a user and returns an access token (JWT, HS256).
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} LoginResponse
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} ErrorResponse "Invalid credentials"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, serr.ErrBadJSON.Error(), http.StatusBadRequest)
		return
	}

	access, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			http.Error(w, serr.ErrInvalidInput.Error(), http.StatusBadRequest)
		case errors.Is(err, serr.ErrInvalidCredentials):
			http.Error(w, serr.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
		default:
			h.Log.Logger.Sugar().Error("login failed")
			http.Error(w, serr.ErrInternal.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	json.NewEncoder(w).Encode(LoginResponse{
		AccessToken: access,
	})
}

// Me возвращает профиль текущего пользователя по access токену.
//
// Ответы:
//   - 200 OK: профиль пользователя;
//   - 401 Unauthorized: нет валидного токена;
//   - 404 Not Found: пользователь удалён;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Current user profile
// @Description  Returns the profile of the authenticated user.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} MeResponse
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "User not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	subject, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	user, err := h.Svc.Auth.Me(r.Context(), subject)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrUnauthorized):
			WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		default:
			h.Log.Logger.Sugar().Errorw(
				"me failed",
				"error", err,
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	json.NewEncoder(w).Encode(MeResponse{
		UserID:           user.ID.String(),
		Email:            user.Email,
		EmailFingerprint: user.EmailFingerprint,
		CreatedAt:        user.CreatedAt,
	})
}
