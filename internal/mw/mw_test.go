package mw

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCache(t *testing.T) {
	calls := 0
	r := gin.New()
	r.Use(Cache(cache.New(time.Minute, time.Minute), time.Minute))
	r.GET("/items", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"calls": calls})
	})
	r.GET("/missing", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusNotFound, gin.H{"calls": calls})
	})
	r.POST("/items", func(c *gin.Context) {
		calls++
		c.Status(http.StatusCreated)
	})

	w := serve(r, http.MethodGet, "/items", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get(CacheStatusHeader))
	assert.JSONEq(t, `{"calls":1}`, w.Body.String())

	w = serve(r, http.MethodGet, "/items", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get(CacheStatusHeader))
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"calls":1}`, w.Body.String())

	serve(r, http.MethodGet, "/missing", nil)
	w = serve(r, http.MethodGet, "/missing", nil)
	assert.Equal(t, "MISS", w.Header().Get(CacheStatusHeader), "errors are not cached")

	serve(r, http.MethodPost, "/items", nil)
	assert.Equal(t, 4, calls)
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(rate.Limit(1), 2, "X-Forwarded-For"))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	alice := http.Header{"X-Forwarded-For": {"10.0.0.1, 172.16.0.1"}}
	bob := http.Header{"X-Forwarded-For": {"10.0.0.2"}}

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", alice).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", alice).Code)

	w := serve(r, http.MethodGet, "/ping", alice)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", bob).Code, "buckets are per client")
}

func TestIPRateLimiter_GetLimiterIsStable(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)
	assert.Same(t, l.GetLimiter("a"), l.GetLimiter("a"))
	assert.NotSame(t, l.GetLimiter("a"), l.GetLimiter("b"))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })

	w := serve(r, http.MethodGet, "/boom?x=1", http.Header{RequestIDHeader: {"req-7"}})
	assert.Equal(t, "req-7", w.Header().Get(RequestIDHeader))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ERROR", line["level"])
	assert.Equal(t, "request", line["msg"])
	assert.Equal(t, "/boom", line["path"])
	assert.Equal(t, "x=1", line["query"])
	assert.Equal(t, float64(http.StatusServiceUnavailable), line["status"])
	assert.Equal(t, "req-7", line["request_id"])
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(Recovery(log))
	r.GET("/panic", func(c *gin.Context) { panic("secret detail") })

	w := serve(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret detail")
	assert.Contains(t, w.Body.String(), `"kind":"INTERNAL"`)
	assert.Contains(t, buf.String(), "secret detail")
}
