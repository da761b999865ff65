package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
)

const (
	// UserIDHeader заголовок с ID пользователя, когда JWT не настроен
	UserIDHeader = "X-User-ID"

	msgUnauthorized = "требуется аутентификация"
	msgInvalidToken = "недействительный токен"
)

var (
	errMissingCredentials = errors.New("missing credentials")
	errInvalidSubject     = errors.New("token subject is not a user id")
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет личность пользователя и кладет его ID в контекст
type Auth struct {
	secret []byte
	logger Logger
}

// NewAuth создает middleware аутентификации.
// С пустым secret ID берется из заголовка X-User-ID без проверки.
func NewAuth(secret string, logger Logger) *Auth {
	return &Auth{secret: []byte(secret), logger: logger}
}

// Middleware реализует mux.MiddlewareFunc
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			userID uuid.UUID
			err    error
		)
		if len(a.secret) == 0 {
			userID, err = userFromHeader(r)
		} else {
			userID, err = a.userFromToken(r)
		}

		if err != nil {
			a.logger.Warn("%s %s - Unauthorized: %v", r.Method, r.URL.Path, err)
			if errors.Is(err, errMissingCredentials) {
				handlers.RespondUnauthorized(w, msgUnauthorized)
			} else {
				handlers.RespondUnauthorized(w, msgInvalidToken)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func (a *Auth) userFromToken(r *http.Request) (uuid.UUID, error) {
	header := r.Header.Get("Authorization")
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(tokenString) == "" {
		return uuid.Nil, errMissingCredentials
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(tokenString), claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: %q", errInvalidSubject, claims.Subject)
	}
	return userID, nil
}

func userFromHeader(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.Header.Get(UserIDHeader))
	if raw == "" {
		return uuid.Nil, errMissingCredentials
	}
	return handlers.ParseUUID(raw)
}
