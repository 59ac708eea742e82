package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/auth"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "некорректный токен авторизации"
)

type actorKey struct{}

// TokenParser проверяет access-токен
type TokenParser interface {
	ParseValidate(token string) (*auth.Claims, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// WithActor кладёт пользователя в контекст
func WithActor(ctx context.Context, actor *domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor достаёт пользователя, положенного middleware Auth
func GetActor(ctx context.Context) (*domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(*domain.Actor)
	return actor, ok && actor != nil
}

// Auth проверяет заголовок Authorization: Bearer <jwt> и кладёт Actor в контекст.
// Роль берётся из claim role, идентификатор из sub.
func Auth(parser TokenParser, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			actor, err := actorFromToken(parser, strings.TrimSpace(token))
			if err != nil {
				logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func actorFromToken(parser TokenParser, token string) (*domain.Actor, error) {
	claims, err := parser.ParseValidate(token)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, err
	}
	return &domain.Actor{UserID: userID, Role: role}, nil
}
