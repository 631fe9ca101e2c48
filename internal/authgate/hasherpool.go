package authgate

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// HasherPool ограничивает число одновременных argon2-вычислений.
//
// Хэширование пароля намеренно дорогое (десятки миллисекунд CPU и десятки
// мегабайт памяти на вызов), поэтому при всплеске регистраций/логинов
// неограниченный параллелизм может съесть всю память сервера. Пул пропускает
// не больше maxConcurrent вычислений одновременно, остальные ждут в Acquire
// с уважением к отмене контекста.
//
// Это требование изоляции ресурсов, а не корректности: сами функции
// HashPassword/VerifyPassword потокобезопасны и без пула.
type HasherPool struct {
	params Argon2Params
	sem    *semaphore.Weighted
}

// NewHasherPool создаёт пул с параметрами argon2 и лимитом параллелизма.
// maxConcurrent <= 0 трактуется как 1.
func NewHasherPool(params Argon2Params, maxConcurrent int64) *HasherPool {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &HasherPool{
		params: params,
		sem:    semaphore.NewWeighted(maxConcurrent),
	}
}

// Hash хэширует пароль через пул.
// Блокируется, пока не освободится слот или не истечёт ctx.
func (p *HasherPool) Hash(ctx context.Context, password string) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("acquire hasher slot: %w", err)
	}
	defer p.sem.Release(1)

	return HashPassword(password, p.params)
}

// Verify проверяет пароль через пул.
// Проверка пересчитывает argon2 и стоит столько же, сколько Hash,
// поэтому тоже проходит через семафор.
func (p *HasherPool) Verify(ctx context.Context, password, encoded string) (bool, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("acquire hasher slot: %w", err)
	}
	defer p.sem.Release(1)

	return VerifyPassword(password, encoded)
}
