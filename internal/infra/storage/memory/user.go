package memory

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	userRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/user"
)

// UserRepository пользователи в памяти
type UserRepository struct {
	store *Store
}

// Add регистрирует пользователя (в PostgreSQL этим занимается сервис аутентификации)
func (r *UserRepository) Add(user domain.User) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = &user
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	s := r.store
	defer s.lock(ctx)()

	user, ok := s.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	out := *user
	return &out, nil
}

// UpdatePenalty устанавливает дату окончания штрафа
func (r *UserRepository) UpdatePenalty(ctx context.Context, id int64, penaltyUntil *time.Time) error {
	s := r.store
	defer s.lock(ctx)()

	user, ok := s.users[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}

	previous := user.PenaltyUntil
	if penaltyUntil == nil {
		user.PenaltyUntil = nil
	} else {
		until := domain.DateOf(*penaltyUntil)
		user.PenaltyUntil = &until
	}
	s.record(ctx, func() { user.PenaltyUntil = previous })

	return nil
}
