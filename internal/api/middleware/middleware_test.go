package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.Called(method, route, status, duration)
}

func TestMetricsMiddleware_RouteTemplate(t *testing.T) {
	recorder := new(mockRecorder)
	recorder.On("ObserveHTTPRequest", http.MethodGet, "/shops/{shopId}/hours", http.StatusNotFound, mock.AnythingOfType("time.Duration")).Once()

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(recorder))
	r.HandleFunc("/shops/{shopId}/hours", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shops/"+uuid.NewString()+"/hours", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	recorder.AssertExpectations(t)
}

func TestMetricsMiddleware_DefaultStatus(t *testing.T) {
	recorder := new(mockRecorder)
	recorder.On("ObserveHTTPRequest", http.MethodPost, "unmatched", http.StatusOK, mock.AnythingOfType("time.Duration")).Once()

	h := MetricsMiddleware(recorder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

	recorder.AssertExpectations(t)
}

func TestRateLimiter_PerUser(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2, logger.NewNop())
	h := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	call := func(userID uuid.UUID) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req = req.WithContext(WithUserID(req.Context(), userID))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	alice, bob := uuid.New(), uuid.New()

	assert.Equal(t, http.StatusCreated, call(alice))
	assert.Equal(t, http.StatusCreated, call(alice))
	assert.Equal(t, http.StatusTooManyRequests, call(alice))

	// у другого пользователя свой лимит
	assert.Equal(t, http.StatusCreated, call(bob))
}

func TestRateLimiter_FallsBackToIP(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1, logger.NewNop())
	h := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:5000"))
}

func TestRateLimiter_SweepDropsIdleLimiters(t *testing.T) {
	limiter := NewRateLimiter(1, 1, logger.NewNop())

	assert.True(t, limiter.limiter("user:busy").Allow())
	limiter.limiter("user:idle")

	// у idle запас полный, у busy токен еще не восстановился
	assert.Equal(t, 1, limiter.sweep(time.Now()))
	_, ok := limiter.limiters.Load("user:busy")
	assert.True(t, ok)
	_, ok = limiter.limiters.Load("user:idle")
	assert.False(t, ok)

	assert.Equal(t, 1, limiter.sweep(time.Now().Add(2*time.Second)))
	_, ok = limiter.limiters.Load("user:busy")
	assert.False(t, ok)
}

func TestRecover(t *testing.T) {
	h := Recover(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
