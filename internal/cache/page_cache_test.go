package cache

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(p *PageCache) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)

	hits := 0
	r := gin.New()
	r.GET("/", p.Middleware(), func(c *gin.Context) {
		hits++
		c.String(http.StatusOK, "render %d", hits)
	})
	r.POST("/", p.Middleware(), func(c *gin.Context) {
		hits++
		c.String(http.StatusOK, "render %d", hits)
	})
	return r, &hits
}

func do(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestPageCache_ReplaysUntilCleared(t *testing.T) {
	p := New(16, time.Minute)
	r, hits := newTestRouter(p)

	first := do(r, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "render 1", first.Body.String())

	// Second request is served from the cache, not the handler.
	second := do(r, http.MethodGet, "/")
	assert.Equal(t, "render 1", second.Body.String())
	assert.Equal(t, 1, *hits)

	p.Clear()

	third := do(r, http.MethodGet, "/")
	assert.Equal(t, "render 2", third.Body.String())
}

func TestPageCache_KeysByRequestURI(t *testing.T) {
	p := New(16, time.Minute)
	r, _ := newTestRouter(p)

	do(r, http.MethodGet, "/")
	page2 := do(r, http.MethodGet, "/?page=2")

	assert.Equal(t, "render 2", page2.Body.String())
}

func TestPageCache_ExpiresAfterTTL(t *testing.T) {
	p := New(16, 30*time.Millisecond)
	r, _ := newTestRouter(p)

	do(r, http.MethodGet, "/")
	time.Sleep(60 * time.Millisecond)

	fresh := do(r, http.MethodGet, "/")
	assert.Equal(t, "render 2", fresh.Body.String())
}

func TestPageCache_SkipsNonGET(t *testing.T) {
	p := New(16, time.Minute)
	r, hits := newTestRouter(p)

	do(r, http.MethodPost, "/")
	do(r, http.MethodPost, "/")

	assert.Equal(t, 2, *hits)
}
