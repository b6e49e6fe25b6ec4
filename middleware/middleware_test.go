package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wangyukai585/BioAlgoDB/config"
	"github.com/wangyukai585/BioAlgoDB/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiterRefill(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Rate: 1, Burst: 2, Interval: time.Minute})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if ok, _ := rl.Allow(ctx, "1.2.3.4"); !ok {
			t.Fatalf("request %d rejected within burst", i+1)
		}
	}
	if ok, _ := rl.Allow(ctx, "1.2.3.4"); ok {
		t.Fatal("request beyond burst allowed")
	}
	if ok, _ := rl.Allow(ctx, "5.6.7.8"); !ok {
		t.Fatal("other clients must have their own bucket")
	}

	now = now.Add(time.Minute)
	if ok, _ := rl.Allow(ctx, "1.2.3.4"); !ok {
		t.Fatal("bucket not refilled after interval")
	}
	if ok, _ := rl.Allow(ctx, "1.2.3.4"); ok {
		t.Fatal("refill must add rate tokens only")
	}
}

func TestRateLimiterEvictsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Rate: 2, Burst: 3, Interval: time.Minute})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	ctx := context.Background()

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		rl.Allow(ctx, ip)
	}
	if len(rl.visitors) != 3 {
		t.Fatalf("visitors = %d, want 3", len(rl.visitors))
	}

	// a bucket of 3 refilled at 2 per minute is full again after 2 minutes
	now = now.Add(time.Minute)
	rl.Allow(ctx, "10.0.0.1")
	if len(rl.visitors) != 3 {
		t.Fatalf("visitors evicted early: %d", len(rl.visitors))
	}

	now = now.Add(90 * time.Second)
	rl.Allow(ctx, "10.0.0.4")
	if len(rl.visitors) != 2 {
		t.Fatalf("visitors = %d after idle period, want 2", len(rl.visitors))
	}
	if _, ok := rl.visitors["10.0.0.2"]; ok {
		t.Fatal("idle visitor kept")
	}
}

func TestRateLimiterWithoutRefillKeepsBuckets(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Rate: 0, Burst: 1, Interval: time.Minute})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	ctx := context.Background()

	if ok, _ := rl.Allow(ctx, "10.0.0.1"); !ok {
		t.Fatal("first request rejected")
	}
	now = now.Add(time.Hour)
	if ok, _ := rl.Allow(ctx, "10.0.0.1"); ok {
		t.Fatal("exhausted bucket came back after eviction")
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) { return false, errors.New("down") }
func (failingLimiter) Backend() string                           { return "test" }

func TestRateLimiterMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		limiter Limiter
		want    []int
	}{
		{"exhausts burst", NewRateLimiter(config.RateLimitConfig{Rate: 1, Burst: 1, Interval: time.Hour}), []int{200, 429}},
		{"backend failure lets requests through", failingLimiter{}, []int{200, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RateLimiterMiddleware(tt.limiter))
			r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

			for i, want := range tt.want {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
				if w.Code != want {
					t.Fatalf("request %d: status = %d, want %d", i+1, w.Code, want)
				}
				if want == http.StatusTooManyRequests {
					var body map[string]string
					json.Unmarshal(w.Body.Bytes(), &body)
					if body["message"] != ErrTooManyRequests {
						t.Fatalf("body = %s", w.Body.String())
					}
				}
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	secret := []byte("test-secret")
	adminToken, _ := utils.GenerateToken(secret, time.Hour, 1, "admin", "admin")
	userToken, _ := utils.GenerateToken(secret, time.Hour, 2, "alice", "user")
	foreignToken, _ := utils.GenerateToken([]byte("other"), time.Hour, 1, "admin", "admin")

	r := gin.New()
	r.DELETE("/algorithms/:id", append(AdminOnly(secret), func(c *gin.Context) {
		claims, _ := ClaimsFromContext(c)
		c.JSON(http.StatusOK, gin.H{"by": claims.Username})
	})...)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic YWRtaW46YWRtaW4=", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreignToken, http.StatusUnauthorized},
		{"user role", "Bearer " + userToken, http.StatusForbidden},
		{"admin role", "Bearer " + adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/algorithms/1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %s", w.Body.String())
			}
			if tt.want != http.StatusOK && body["message"] == "" {
				t.Fatalf("error body without message: %s", w.Body.String())
			}
		})
	}
}
