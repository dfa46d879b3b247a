package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
)

const (
	// HeaderUserID заголовок с ID аутентифицированного пользователя
	HeaderUserID = "X-User-ID"
	// HeaderUserRole заголовок с ролью пользователя
	HeaderUserRole = "X-User-Role"

	// RoleAdmin роль администратора
	RoleAdmin = "admin"
	// RoleUser роль обычного пользователя
	RoleUser = "user"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal аутентифицированный субъект запроса
// Аутентификацию выполняет внешний шлюз, сервис доверяет заголовкам
type Principal struct {
	UserID int64
	Role   string
}

// IsAdmin проверяет, что субъект - администратор
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Auth middleware извлекает пользователя из заголовков запроса
// Запросы без корректного X-User-ID отклоняются
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(HeaderUserID)
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, "missing X-User-ID header")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "invalid X-User-ID header")
			return
		}

		role := r.Header.Get(HeaderUserRole)
		if role == "" {
			role = RoleUser
		}

		principal := Principal{UserID: userID, Role: role}
		ctx := context.WithValue(r.Context(), principalKey, principal)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly middleware пропускает только администраторов
// Должен стоять после Auth
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := GetPrincipal(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, "missing X-User-ID header")
			return
		}

		if !principal.IsAdmin() {
			handlers.RespondForbidden(w, "admin role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetPrincipal извлекает субъекта из контекста запроса
func GetPrincipal(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalKey).(Principal)
	return principal, ok
}

// GetUserID извлекает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	principal, ok := GetPrincipal(ctx)
	if !ok {
		return 0, false
	}
	return principal.UserID, true
}
