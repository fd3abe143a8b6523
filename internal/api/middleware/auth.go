package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/mzavt/PWS-SchedulerService/internal/api/handlers"
)

const (
	adminTokenHeader = "X-Admin-Token"

	msgMissingToken = "отсутствует токен администратора"
	msgInvalidToken = "некорректный токен администратора"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// AdminAuth проверяет токен администратора в заголовке X-Admin-Token
// Используется для административного сегмента API
func AdminAuth(token string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(adminTokenHeader)
			if got == "" {
				logger.Warn("AdminAuth: missing token for %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				logger.Warn("AdminAuth: invalid token for %s %s", r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
