package holidayapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

// Client клиент Nager.Date для проверки государственных праздников
type Client struct {
	baseURL     string
	countryCode string
	httpClient  *http.Client
	cache       Cache
	log         Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL, countryCode string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		countryCode: strings.ToUpper(countryCode),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// UseCache подключает кэш списков праздников
func (c *Client) UseCache(cache Cache) {
	c.cache = cache
}

// GetPublicHolidays получает праздники за год, сначала из кэша
func (c *Client) GetPublicHolidays(ctx context.Context, year int) ([]Holiday, error) {
	if c.cache != nil {
		holidays, ok, err := c.cache.Get(ctx, year, c.countryCode)
		if err != nil {
			c.log.Warn("HolidayAPI: cache read failed for year=%d country=%s: %v", year, c.countryCode, err)
		} else if ok {
			return holidays, nil
		}
	}

	endpoint := fmt.Sprintf("%s/PublicHolidays/%d/%s", c.baseURL, year, url.PathEscape(c.countryCode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCountry, c.countryCode)
	case http.StatusNoContent:
		return []Holiday{}, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var holidays []Holiday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, year, c.countryCode, holidays); err != nil {
			c.log.Warn("HolidayAPI: cache write failed for year=%d country=%s: %v", year, c.countryCode, err)
		}
	}

	return holidays, nil
}

// IsHoliday проверяет, является ли дата государственным праздником.
// При недоступности сервиса дата считается рабочей.
func (c *Client) IsHoliday(ctx context.Context, date time.Time) bool {
	holidays, err := c.GetPublicHolidays(ctx, date.Year())
	if err != nil {
		c.log.Warn("HolidayAPI: lookup failed for %s, treating as working day: %v", date.Format(domain.DateFormat), err)
		return false
	}

	target := date.Format(domain.DateFormat)
	for _, h := range holidays {
		if h.Date == target {
			c.log.Info("HolidayAPI: %s is a public holiday (%s)", target, h.Name)
			return true
		}
	}

	return false
}
