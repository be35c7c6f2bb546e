package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/planbay/scheduling-service/internal/api/handlers"
)

// Заголовки аутентификации, проставляемые API-шлюзом
const (
	HeaderOrgID    = "X-Org-ID"
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type contextKey string

const (
	orgIDKey    contextKey = "orgID"
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

// Auth извлекает идентификацию пользователя из заголовков шлюза
// и кладет ее в контекст запроса. Запросы без организации отклоняются.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orgID, err := strconv.ParseInt(r.Header.Get(HeaderOrgID), 10, 64)
		if err != nil || orgID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "missing or invalid organization header")
			return
		}

		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "missing or invalid user header")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, orgIDKey, orgID)
		ctx = context.WithValue(ctx, userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, r.Header.Get(HeaderUserRole))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OrgID возвращает идентификатор организации из контекста
func OrgID(ctx context.Context) int64 {
	id, _ := ctx.Value(orgIDKey).(int64)
	return id
}

// UserID возвращает идентификатор пользователя из контекста
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

// UserRole возвращает роль пользователя из контекста
func UserRole(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}
