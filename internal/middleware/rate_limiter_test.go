package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func setupTestGin() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRateLimiter_Allow(t *testing.T) {
	router := setupTestGin()

	limiter := RateLimiter(rate.Limit(1), 1)
	router.Use(limiter)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req1, _ := http.NewRequest("GET", "/test", nil)
	req1.RemoteAddr = "127.0.0.1:12345"
	w1 := httptest.NewRecorder()
	router.ServeHTTP(w1, req1)

	if w1.Code != http.StatusOK {
		t.Errorf("Expected first request to succeed, got status %d", w1.Code)
	}

	req2, _ := http.NewRequest("GET", "/test", nil)
	req2.RemoteAddr = "127.0.0.1:12345"
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)

	if w2.Code != http.StatusTooManyRequests {
		t.Errorf("Expected second request to be rate limited, got status %d", w2.Code)
	}
}

func TestRateLimiter_DifferentIPs(t *testing.T) {
	router := setupTestGin()

	limiter := RateLimiter(rate.Limit(1), 1)
	router.Use(limiter)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req1, _ := http.NewRequest("GET", "/test", nil)
	req1.RemoteAddr = "127.0.0.1:12345"
	w1 := httptest.NewRecorder()
	router.ServeHTTP(w1, req1)

	req2, _ := http.NewRequest("GET", "/test", nil)
	req2.RemoteAddr = "192.168.1.1:54321"
	req2.Header.Set("X-Forwarded-For", "192.168.1.1")
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)

	if w1.Code != http.StatusOK {
		t.Errorf("Expected first IP to succeed, got status %d", w1.Code)
	}
	if w2.Code != http.StatusOK {
		t.Errorf("Expected second IP to succeed, got status %d", w2.Code)
	}
}

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestDistributedRateLimiter_AllowsUnderLimit(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewDistributedRateLimiter(client, 5, time.Minute)

	router := setupTestGin()
	router.Use(limiter.Middleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	for i := 0; i < 5; i++ {
		req, _ := http.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "10.0.0.1:1000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Request %d: expected status OK, got %d", i+1, w.Code)
		}
	}
}

func TestDistributedRateLimiter_BlocksOverLimit(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewDistributedRateLimiter(client, 2, time.Minute)

	router := setupTestGin()
	router.Use(limiter.Middleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	var lastCode int
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "10.0.0.2:1000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		lastCode = w.Code
	}

	if lastCode != http.StatusTooManyRequests {
		t.Errorf("Expected third request to be rate limited, got status %d", lastCode)
	}
}

func TestDistributedRateLimiter_SeparateClients(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewDistributedRateLimiter(client, 1, time.Minute)

	router := setupTestGin()
	router.Use(limiter.Middleware())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req1, _ := http.NewRequest("GET", "/test", nil)
	req1.RemoteAddr = "10.0.0.3:1000"
	w1 := httptest.NewRecorder()
	router.ServeHTTP(w1, req1)

	req2, _ := http.NewRequest("GET", "/test", nil)
	req2.RemoteAddr = "10.0.0.4:1000"
	req2.Header.Set("X-Forwarded-For", "10.0.0.4")
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)

	if w1.Code != http.StatusOK || w2.Code != http.StatusOK {
		t.Errorf("Expected both clients to pass, got %d and %d", w1.Code, w2.Code)
	}
}

// Redis going away must fail open rather than reject traffic.
func TestDistributedRateLimiter_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewDistributedRateLimiter(client, 1, time.Minute)

	mr.Close()

	router := setupTestGin()
	router.Use(limiter.Middleware())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.RemoteAddr = "10.0.0.5:1000"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected request to pass when redis is down, got status %d", w.Code)
	}
}

func BenchmarkRateLimiter(b *testing.B) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimiter(rate.Limit(1000000), 1000000))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/test", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}
