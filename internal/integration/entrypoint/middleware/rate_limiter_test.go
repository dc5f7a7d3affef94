package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func rateLimitedRouter(t *testing.T, limiter *RateLimiter, subjectID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/scan", func(c *gin.Context) {
		if subjectID != "" {
			c.Set(SubjectIDKey, subjectID)
		}
		c.Next()
	}, limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	limiter := NewRateLimiterWithConfig(client, "scan", 3, time.Minute, nil)
	router := rateLimitedRouter(t, limiter, "user-1")

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/scan", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/scan", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status after limit = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	limiter := NewRateLimiterWithConfig(client, "scan", 1, time.Minute, nil)
	router := rateLimitedRouter(t, limiter, "user-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/scan", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", w.Code, http.StatusOK)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/scan", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}

	mini.FastForward(2 * time.Minute)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/scan", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status after window reset = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRateLimiterSeparatesSubjects(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	limiter := NewRateLimiterWithConfig(client, "scan", 1, time.Minute, nil)

	routerA := rateLimitedRouter(t, limiter, "user-a")
	routerB := rateLimitedRouter(t, limiter, "user-b")

	w := httptest.NewRecorder()
	routerA.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/scan", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("user-a status = %d, want %d", w.Code, http.StatusOK)
	}

	w = httptest.NewRecorder()
	routerB.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/scan", nil))
	if w.Code != http.StatusOK {
		t.Errorf("user-b status = %d, want %d; limits must not be shared", w.Code, http.StatusOK)
	}
}

func TestRateLimiterFailsOpenWhenRedisDown(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	mini.Close()

	limiter := NewRateLimiterWithConfig(client, "scan", 1, time.Minute, nil)
	router := rateLimitedRouter(t, limiter, "user-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/scan", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status with redis down = %d, want %d (fail open)", w.Code, http.StatusOK)
	}
}
