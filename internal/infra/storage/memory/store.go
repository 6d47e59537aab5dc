package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

type txKey struct{}

type closureKey struct {
	spaceID int64
	date    string
}

// Store хранилище в памяти для локального запуска и тестов.
// Транзакции сериализуются одним мьютексом, при ошибке изменения откатываются по журналу.
type Store struct {
	mu sync.Mutex

	spaces       map[int64]*domain.Space
	users        map[int64]*domain.User
	reservations map[int64]*domain.Reservation
	closures     map[closureKey]time.Time

	nextSpaceID       int64
	nextReservationID int64

	undo []func()
	now  func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		spaces:       make(map[int64]*domain.Space),
		users:        make(map[int64]*domain.User),
		reservations: make(map[int64]*domain.Reservation),
		closures:     make(map[closureKey]time.Time),
		now:          time.Now,
	}
}

// Spaces возвращает репозиторий помещений
func (s *Store) Spaces() *SpaceRepository {
	return &SpaceRepository{store: s}
}

// Reservations возвращает репозиторий бронирований
func (s *Store) Reservations() *ReservationRepository {
	return &ReservationRepository{store: s}
}

// Users возвращает репозиторий пользователей
func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

// Do выполняет fn атомарно
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

// DoSerializable выполняет fn атомарно (все транзакции и так сериализуются)
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

// DoReadOnly выполняет fn под блокировкой хранилища
func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

func (s *Store) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.undo = s.undo[:0]
	defer func() {
		if p := recover(); p != nil {
			s.rollback()
			panic(p)
		}
		if err != nil {
			s.rollback()
		}
		s.undo = s.undo[:0]
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

func (s *Store) rollback() {
	for i := len(s.undo) - 1; i >= 0; i-- {
		s.undo[i]()
	}
}

func (s *Store) inTx(ctx context.Context) bool {
	store, ok := ctx.Value(txKey{}).(*Store)
	return ok && store == s
}

// lock берёт мьютекс, если вызов не внутри транзакции этого хранилища
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// record запоминает обратную операцию для отката транзакции
func (s *Store) record(ctx context.Context, undo func()) {
	if s.inTx(ctx) {
		s.undo = append(s.undo, undo)
	}
}

func dateKey(date time.Time) string {
	return date.Format(domain.DateFormat)
}
