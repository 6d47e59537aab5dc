package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers"
	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	userRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/user"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	msgMissingUserID = "missing or invalid X-User-ID header"
	msgStaffOnly     = "staff role required"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

// UserRepository источник ролей пользователей для StaffOnly
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Auth извлекает ID и роль пользователя из заголовков.
// Заголовки выставляет доверенный шлюз после аутентификации, клиент их не передаёт.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(HeaderUserID)), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		role := domain.RoleStudent
		if strings.EqualFold(strings.TrimSpace(r.Header.Get(HeaderUserRole)), string(domain.RoleStaff)) {
			role = domain.RoleStaff
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StaffOnly пропускает только персонал. Ставится после Auth.
// Роль из заголовка дополнительно сверяется с ролью пользователя в хранилище.
func StaffOnly(users UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsStaff(r.Context()) {
				handlers.RespondForbidden(w, msgStaffOnly)
				return
			}

			userID, _ := GetUserID(r.Context())
			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, userRepo.ErrUserNotFound) || errors.Is(err, domain.ErrNotFound) {
					handlers.RespondForbidden(w, msgStaffOnly)
					return
				}
				handlers.RespondInternalError(w)
				return
			}
			if !user.IsStaff() {
				handlers.RespondForbidden(w, msgStaffOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID возвращает ID пользователя, положенный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// IsStaff возвращает true, если запрос пришёл от сотрудника
func IsStaff(ctx context.Context) bool {
	role, ok := ctx.Value(userRoleKey).(domain.UserRole)
	return ok && role == domain.RoleStaff
}

// WithUser кладёт пользователя в контекст (для тестов хендлеров)
func WithUser(ctx context.Context, userID int64, role domain.UserRole) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}
