package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newRateLimitedEngine(t *testing.T, rule RateLimitRule) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := gin.New()
	r.Use(RateLimitMiddleware(client, rule, KeyByIP))
	r.GET("/quote", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0})
	})
	return r, mr
}

func hitStatusCode(t *testing.T, r *gin.Engine) (int, string) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/quote", nil)
	req.RemoteAddr = "10.0.0.8:4000"
	r.ServeHTTP(w, req)
	var resp struct {
		StatusCode int    `json:"status_code"`
		Msg        string `json:"msg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode, resp.Msg
}

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(`{"username":" Court-Admin "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("username")(c)
	if key != "court-admin|1.2.3.4" {
		t.Fatalf("key want court-admin|1.2.3.4 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Court-Admin") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("expected handler response body, got %s", w.Body.String())
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(10), want: 10, ok: true},
		{name: "int", input: int(11), want: 11, ok: true},
		{name: "uint8", input: uint8(12), want: 12, ok: true},
		{name: "float64", input: float64(13.9), want: 13, ok: true},
		{name: "string", input: "bad", want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok want %v got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("value want %d got %d", tc.want, got)
			}
		})
	}
}

func TestRateLimitMiddlewareRejectsOverLimit(t *testing.T) {
	r, _ := newRateLimitedEngine(t, RateLimitRule{
		Prefix:        "vn:rate:quote",
		WindowSeconds: 60,
		MaxRequests:   2,
		MessageKey:    "error.quote_too_many",
	})

	for i := 0; i < 2; i++ {
		if code, _ := hitStatusCode(t, r); code != 0 {
			t.Fatalf("request %d should pass, got status_code %d", i+1, code)
		}
	}
	code, msg := hitStatusCode(t, r)
	if code != 429 {
		t.Fatalf("third request want 429 got %d", code)
	}
	if !strings.Contains(msg, "60") {
		t.Fatalf("message should carry wait seconds, got %s", msg)
	}
}

func TestRateLimitMiddlewareBlocksAfterLimit(t *testing.T) {
	r, mr := newRateLimitedEngine(t, RateLimitRule{
		Prefix:        "vn:rate:admin_login",
		WindowSeconds: 60,
		MaxRequests:   1,
		BlockSeconds:  300,
	})

	if code, _ := hitStatusCode(t, r); code != 0 {
		t.Fatalf("first request should pass, got %d", code)
	}
	if code, _ := hitStatusCode(t, r); code != 429 {
		t.Fatalf("second request want 429 got %d", code)
	}
	blockKey := "vn:rate:admin_login:10.0.0.8:block"
	if !mr.Exists(blockKey) {
		t.Fatalf("block key %s should exist", blockKey)
	}

	// 窗口过期后封禁仍然生效
	mr.FastForward(120 * time.Second)
	code, msg := hitStatusCode(t, r)
	if code != 429 {
		t.Fatalf("blocked request want 429 got %d", code)
	}
	if !strings.Contains(msg, "180") {
		t.Fatalf("message should carry remaining block seconds, got %s", msg)
	}

	mr.FastForward(200 * time.Second)
	if code, _ := hitStatusCode(t, r); code != 0 {
		t.Fatalf("request after block should pass, got %d", code)
	}
}
