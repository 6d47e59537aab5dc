package spaces

import (
	"context"
	"errors"
	"fmt"

	spaceRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/space"
	"github.com/m04kA/SMC-StudyRoomsService/internal/service/spaces/models"
)

// Service справочник учебных помещений
type Service struct {
	spaceRepo SpaceRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса помещений
func NewService(spaceRepo SpaceRepository, logger Logger) *Service {
	return &Service{
		spaceRepo: spaceRepo,
		logger:    logger,
	}
}

// List возвращает все помещения, упорядоченные по названию
func (s *Service) List(ctx context.Context) (*models.SpaceListResponse, error) {
	spaces, err := s.spaceRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d spaces", len(spaces))
	return models.FromDomainSpaceList(spaces), nil
}

// GetByID получает помещение по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SpaceResponse, error) {
	space, err := s.spaceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("GetByID: space id=%d not found", id)
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("GetByID: repository error for space id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSpace(space), nil
}

// Create создает помещение
func (s *Service) Create(ctx context.Context, req *models.CreateSpaceRequest) (*models.SpaceResponse, error) {
	s.logger.Info("Create: creating space name=%q, capacity=%d, fullDay=%t", req.Name, req.Capacity, req.FullDay)

	// 1. Валидируем конфигурацию
	space := req.ToDomainSpace()
	if err := space.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем
	created, err := s.spaceRepo.Create(ctx, space)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created space id=%d", created.ID)
	return models.FromDomainSpace(created), nil
}

// Update обновляет помещение. Поддерживает частичное обновление.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateSpaceRequest) (*models.SpaceResponse, error) {
	s.logger.Info("Update: updating space id=%d", id)

	// 1. Получаем текущее состояние
	space, err := s.spaceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("Update: space id=%d not found", id)
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("Update: repository error for space id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 2. Применяем изменения и валидируем результат
	req.ApplyToSpace(space)
	if err := space.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for space id=%d: %v", id, err)
		return nil, err
	}

	// 3. Сохраняем
	updated, err := s.spaceRepo.Update(ctx, space)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("Update: repository error for space id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated space id=%d", id)
	return models.FromDomainSpace(updated), nil
}

// Delete удаляет помещение вместе с его бронированиями
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting space id=%d", id)

	if err := s.spaceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("Delete: space id=%d not found", id)
			return ErrSpaceNotFound
		}
		s.logger.Error("Delete: repository error for space id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted space id=%d", id)
	return nil
}
