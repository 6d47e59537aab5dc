package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	spaceRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/space"
)

// SpaceRepository помещения в памяти
type SpaceRepository struct {
	store *Store
}

// Create создает помещение
func (r *SpaceRepository) Create(ctx context.Context, space *domain.Space) (*domain.Space, error) {
	s := r.store
	defer s.lock(ctx)()

	s.nextSpaceID++
	now := s.now()
	created := *space
	created.ID = s.nextSpaceID
	created.CreatedAt = now
	created.UpdatedAt = now
	s.spaces[created.ID] = &created
	s.record(ctx, func() { delete(s.spaces, created.ID) })

	out := created
	return &out, nil
}

// GetByID получает помещение по ID
func (r *SpaceRepository) GetByID(ctx context.Context, id int64) (*domain.Space, error) {
	s := r.store
	defer s.lock(ctx)()

	space, ok := s.spaces[id]
	if !ok {
		return nil, spaceRepo.ErrSpaceNotFound
	}
	out := *space
	return &out, nil
}

// List возвращает помещения по названию
func (r *SpaceRepository) List(ctx context.Context) ([]*domain.Space, error) {
	s := r.store
	defer s.lock(ctx)()

	spaces := make([]*domain.Space, 0, len(s.spaces))
	for _, space := range s.spaces {
		out := *space
		spaces = append(spaces, &out)
	}
	sort.Slice(spaces, func(i, j int) bool {
		if spaces[i].Name != spaces[j].Name {
			return spaces[i].Name < spaces[j].Name
		}
		return spaces[i].ID < spaces[j].ID
	})
	return spaces, nil
}

// Update обновляет помещение
func (r *SpaceRepository) Update(ctx context.Context, space *domain.Space) (*domain.Space, error) {
	s := r.store
	defer s.lock(ctx)()

	existing, ok := s.spaces[space.ID]
	if !ok {
		return nil, spaceRepo.ErrSpaceNotFound
	}
	previous := *existing

	updated := *space
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = s.now()
	s.spaces[space.ID] = &updated
	s.record(ctx, func() { s.spaces[previous.ID] = &previous })

	out := updated
	return &out, nil
}

// Delete удаляет помещение вместе с его бронированиями и отметками о закрытии
func (r *SpaceRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	defer s.lock(ctx)()

	space, ok := s.spaces[id]
	if !ok {
		return spaceRepo.ErrSpaceNotFound
	}
	delete(s.spaces, id)
	s.record(ctx, func() { s.spaces[id] = space })

	for resID, reservation := range s.reservations {
		if reservation.SpaceID != id {
			continue
		}
		removed := reservation
		delete(s.reservations, resID)
		s.record(ctx, func() { s.reservations[removed.ID] = removed })
	}

	for key, createdAt := range s.closures {
		if key.spaceID != id {
			continue
		}
		k, v := key, createdAt
		delete(s.closures, key)
		s.record(ctx, func() { s.closures[k] = v })
	}

	return nil
}
