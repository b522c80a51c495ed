package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/venue-next/internal/authz"
	"github.com/venue-next/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func TestMetricsMiddlewareLabelsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/venues/:venue_id/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	matched := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/venues/:venue_id/ping", "200")
	unmatched := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	matchedBefore := testutil.ToFloat64(matched)
	unmatchedBefore := testutil.ToFloat64(unmatched)

	for _, path := range []string{"/venues/1/ping", "/venues/2/ping", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(matched); got != matchedBefore+2 {
		t.Fatalf("route template counter want %v got %v", matchedBefore+2, got)
	}
	if got := testutil.ToFloat64(unmatched); got != unmatchedBefore+1 {
		t.Fatalf("unmatched counter want %v got %v", unmatchedBefore+1, got)
	}
}

func newRBACTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	authzService, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	if err := authzService.SetAdminRoles(5, 7, []string{authz.RoleReadonlyAuditor}); err != nil {
		t.Fatalf("assign auditor failed: %v", err)
	}

	r := gin.New()
	// 用请求头模拟 JWT 中间件写入的上下文
	r.Use(func(c *gin.Context) {
		if raw := c.GetHeader("X-Test-Admin"); raw != "" {
			id, _ := strconv.Atoi(raw)
			c.Set("admin_id", uint(id))
		}
		c.Set(adminIsSuperContextKey, c.GetHeader("X-Test-Super") == "1")
		c.Next()
	})
	venue := r.Group("/api/v1/admin/venues/:venue_id")
	venue.Use(AdminRBACMiddleware(authzService))
	ok := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0})
	}
	venue.GET("/assets", ok)
	venue.POST("/assets", ok)
	return r
}

func TestAdminRBACMiddleware(t *testing.T) {
	r := newRBACTestEngine(t)

	cases := []struct {
		name   string
		method string
		path   string
		admin  string
		super  bool
		want   int
	}{
		{name: "auditor_read", method: http.MethodGet, path: "/api/v1/admin/venues/7/assets", admin: "5", want: 0},
		{name: "auditor_write_denied", method: http.MethodPost, path: "/api/v1/admin/venues/7/assets", admin: "5", want: 403},
		{name: "other_venue_denied", method: http.MethodGet, path: "/api/v1/admin/venues/8/assets", admin: "5", want: 403},
		{name: "unassigned_admin_denied", method: http.MethodGet, path: "/api/v1/admin/venues/7/assets", admin: "6", want: 403},
		{name: "super_bypass", method: http.MethodPost, path: "/api/v1/admin/venues/8/assets", admin: "1", super: true, want: 0},
		{name: "missing_admin", method: http.MethodGet, path: "/api/v1/admin/venues/7/assets", want: 401},
		{name: "bad_venue_id", method: http.MethodGet, path: "/api/v1/admin/venues/abc/assets", admin: "5", want: 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.admin != "" {
				req.Header.Set("X-Test-Admin", tc.admin)
			}
			if tc.super {
				req.Header.Set("X-Test-Super", "1")
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("http status want 200 got %d", w.Code)
			}
			var resp struct {
				StatusCode int `json:"status_code"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response failed: %v", err)
			}
			if resp.StatusCode != tc.want {
				t.Fatalf("status_code want %d got %d", tc.want, resp.StatusCode)
			}
		})
	}
}
