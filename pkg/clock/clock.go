package clock

import "time"

// Clock реальный провайдер времени в заданном часовом поясе
type Clock struct {
	location *time.Location
}

// New создает провайдер времени. nil означает UTC.
func New(location *time.Location) *Clock {
	if location == nil {
		location = time.UTC
	}
	return &Clock{location: location}
}

// Now возвращает текущее время в часовом поясе сервиса
func (c *Clock) Now() time.Time {
	return time.Now().In(c.location)
}

// Fixed провайдер, всегда возвращающий одно и то же время (для тестов)
type Fixed struct {
	T time.Time
}

// Now возвращает зафиксированное время
func (f Fixed) Now() time.Time {
	return f.T
}
