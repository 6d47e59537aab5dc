package holidays

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-StudyRoomsService/internal/integrations/holidayapi"
)

const keyPrefix = "studyrooms:holidays"

var (
	// ErrCacheRead возвращается при ошибке чтения из Redis
	ErrCacheRead = errors.New("holidays.cache: failed to read")

	// ErrCacheWrite возвращается при ошибке записи в Redis
	ErrCacheWrite = errors.New("holidays.cache: failed to write")
)

// Cache кэш списков праздников в Redis
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает кэш с временем жизни записей ttl
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает список праздников; ok=false, если записи нет
func (c *Cache) Get(ctx context.Context, year int, countryCode string) ([]holidayapi.Holiday, bool, error) {
	val, err := c.client.Get(ctx, key(year, countryCode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCacheRead, err)
	}

	var holidays []holidayapi.Holiday
	if err := json.Unmarshal(val, &holidays); err != nil {
		return nil, false, fmt.Errorf("%w: decode: %v", ErrCacheRead, err)
	}

	return holidays, true, nil
}

// Set сохраняет список праздников
func (c *Cache) Set(ctx context.Context, year int, countryCode string, holidays []holidayapi.Holiday) error {
	data, err := json.Marshal(holidays)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrCacheWrite, err)
	}

	if err := c.client.Set(ctx, key(year, countryCode), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}

	return nil
}

func key(year int, countryCode string) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, countryCode, year)
}
