package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

// DefaultTTL время жизни закэшированного ответа
const DefaultTTL = 45 * time.Minute

// Service сервис погоды с кэшированием ответов внешнего API
type Service struct {
	provider Provider
	cache    *cache.Cache
	ttl      time.Duration
	logger   Logger
}

// NewService создает новый экземпляр сервиса погоды
func NewService(provider Provider, ttl time.Duration, logger Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		provider: provider,
		cache:    cache.New(ttl, 2*ttl),
		ttl:      ttl,
		logger:   logger,
	}
}

// GetWeather возвращает погоду в точке. at == nil означает текущую погоду,
// иначе прогноз на начало часа at.
func (s *Service) GetWeather(ctx context.Context, latitude, longitude float64, at *time.Time) (*domain.Weather, error) {
	if latitude < -90 || latitude > 90 {
		return nil, ErrInvalidLatitude
	}
	if longitude < -180 || longitude > 180 {
		return nil, ErrInvalidLongitude
	}

	key := cacheKey(latitude, longitude, at)
	if cached, found := s.cache.Get(key); found {
		return cached.(*domain.Weather), nil
	}

	var (
		w   *domain.Weather
		err error
	)
	if at == nil {
		w, err = s.provider.GetCurrentWeather(ctx, latitude, longitude)
	} else {
		w, err = s.provider.GetWeatherAt(ctx, latitude, longitude, at.UTC().Truncate(time.Hour))
	}
	if err != nil {
		s.logger.Warn("GetWeather: provider error for key=%s: %v", key, err)
		return nil, fmt.Errorf("%w: GetWeather - provider error: %v", ErrUnavailable, err)
	}

	s.cache.Set(key, w, s.ttl)
	return w, nil
}

func cacheKey(latitude, longitude float64, at *time.Time) string {
	suffix := "now"
	if at != nil {
		suffix = at.UTC().Truncate(time.Hour).Format(time.RFC3339)
	}
	return fmt.Sprintf("%.4f,%.4f,%s", latitude, longitude, suffix)
}
