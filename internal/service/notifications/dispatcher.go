package notifications

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

const (
	channelEmail = "email"
	channelSMS   = "sms"

	resultSent    = "sent"
	resultFailed  = "failed"
	resultDropped = "dropped"
	resultSkipped = "skipped"
)

// sendTimeout ограничение на доставку одного уведомления
const sendTimeout = 10 * time.Second

type eventKind int

const (
	eventCreated eventKind = iota
	eventConfirmed
	eventCancelled
	eventCancelledByStaff
)

type job struct {
	kind        eventKind
	reservation domain.Reservation
}

// Dispatcher отправляет уведомления о бронированиях пулом воркеров.
// Постановка в очередь никогда не блокирует запрос: при переполнении уведомление отбрасывается.
type Dispatcher struct {
	workers int
	jobs    chan job

	sender  Sender
	users   UserRepository
	spaces  SpaceRepository
	metrics Metrics
	logger  Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher создает диспетчер уведомлений
func NewDispatcher(
	sender Sender,
	users UserRepository,
	spaces SpaceRepository,
	workers, queueSize int,
	metrics Metrics,
	logger Logger,
) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}
	return &Dispatcher{
		workers: workers,
		jobs:    make(chan job, queueSize),
		sender:  sender,
		users:   users,
		spaces:  spaces,
		metrics: metrics,
		logger:  logger,
	}
}

// Start запускает воркеры
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
}

// Stop прекращает приём уведомлений и ждёт, пока воркеры разберут очередь
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
}

// ReservationCreated уведомляет пользователя о созданном бронировании
func (d *Dispatcher) ReservationCreated(reservation *domain.Reservation) {
	d.enqueue(job{kind: eventCreated, reservation: *reservation})
}

// ReservationConfirmed уведомляет пользователя о подтверждении бронирования персоналом
func (d *Dispatcher) ReservationConfirmed(reservation *domain.Reservation) {
	d.enqueue(job{kind: eventConfirmed, reservation: *reservation})
}

// ReservationCancelled уведомляет пользователя об отмене бронирования
func (d *Dispatcher) ReservationCancelled(reservation *domain.Reservation, byStaff bool) {
	kind := eventCancelled
	if byStaff {
		kind = eventCancelledByStaff
	}
	d.enqueue(job{kind: kind, reservation: *reservation})
}

func (d *Dispatcher) enqueue(j job) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("Notifications: dispatcher stopped, dropping notification for reservation id=%d", j.reservation.ID)
		d.incMetric(channelEmail, resultDropped)
		return
	}

	select {
	case d.jobs <- j:
	default:
		d.logger.Warn("Notifications: queue is full, dropping notification for reservation id=%d", j.reservation.ID)
		d.incMetric(channelEmail, resultDropped)
	}
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		select {
		case j, ok := <-d.jobs:
			if !ok {
				return
			}
			d.process(ctx, j)
		case <-ctx.Done():
			d.logger.Info("Notifications: worker %d shutting down", id)
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, j job) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	r := j.reservation

	user, err := d.users.GetByID(ctx, r.UserID)
	if err != nil {
		d.logger.Warn("Notifications: failed to load user id=%d for reservation id=%d: %v", r.UserID, r.ID, err)
		d.incMetric(channelEmail, resultFailed)
		return
	}

	spaceName := fmt.Sprintf("space #%d", r.SpaceID)
	if space, err := d.spaces.GetByID(ctx, r.SpaceID); err == nil {
		spaceName = space.Name
	}

	if strings.TrimSpace(user.Email) == "" {
		d.logger.Info("Notifications: no email for user id=%d, reservation id=%d", user.ID, r.ID)
		d.incMetric(channelEmail, resultSkipped)
	} else {
		subject, body := emailMessage(j.kind, user, spaceName, &r)
		d.deliver(channelEmail, r.ID, d.sender.SendEmail(ctx, user.Email, subject, body))
	}

	// Отмену персоналом дублируем SMS, если известен телефон
	if j.kind == eventCancelledByStaff && user.Phone != nil && *user.Phone != "" {
		d.deliver(channelSMS, r.ID, d.sender.SendSMS(ctx, *user.Phone, smsMessage(spaceName, &r)))
	}
}

func (d *Dispatcher) deliver(channel string, reservationID int64, err error) {
	if err != nil {
		d.logger.Warn("Notifications: %s delivery failed for reservation id=%d: %v", channel, reservationID, err)
		d.incMetric(channel, resultFailed)
		return
	}
	d.incMetric(channel, resultSent)
}

func (d *Dispatcher) incMetric(channel, result string) {
	if d.metrics != nil {
		d.metrics.IncNotification(channel, result)
	}
}

func emailMessage(kind eventKind, user *domain.User, spaceName string, r *domain.Reservation) (string, string) {
	date := r.Date.Format(domain.DateFormat)

	switch kind {
	case eventCreated:
		if r.Status == domain.StatusPending {
			return "StudyRooms reservation pending confirmation",
				fmt.Sprintf("Hello %s,\nYour reservation for %s on %s from %s to %s is pending confirmation.",
					user.FullName, spaceName, date, r.StartTime, r.EndTime)
		}
		return "StudyRooms reservation confirmed",
			fmt.Sprintf("Hello %s,\nYour reservation for %s on %s from %s to %s is confirmed.",
				user.FullName, spaceName, date, r.StartTime, r.EndTime)
	case eventConfirmed:
		return "StudyRooms reservation confirmed",
			fmt.Sprintf("Hello %s,\nYour reservation for %s on %s from %s to %s was confirmed by staff.",
				user.FullName, spaceName, date, r.StartTime, r.EndTime)
	case eventCancelledByStaff:
		return "StudyRooms reservation cancelled by staff",
			fmt.Sprintf("Hello %s,\nYour reservation for %s on %s was cancelled by staff.", user.FullName, spaceName, date)
	default:
		return "Your StudyRooms reservation was cancelled",
			fmt.Sprintf("Hello %s,\nYour reservation for %s on %s was cancelled.", user.FullName, spaceName, date)
	}
}

func smsMessage(spaceName string, r *domain.Reservation) string {
	return fmt.Sprintf("StudyRooms: your reservation for %s on %s %s-%s was cancelled by staff.",
		spaceName, r.Date.Format(domain.DateFormat), r.StartTime, r.EndTime)
}
