// Серверная модель пользователя
package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID
	Email            string
	EmailFingerprint string // sha256 от нормализованного email, для логов вместо адреса
	PasswordHash     string
	CreatedAt        time.Time
}
