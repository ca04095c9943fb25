// Package cache provides the whole-page cache used by the index feed.
//
// Cached pages stay stale until the TTL runs out or Clear wipes the
// cache wholesale; writes do not invalidate anything.
package cache

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const DefaultTTL = 20 * time.Second

type entry struct {
	contentType string
	body        []byte
}

type PageCache struct {
	lru *expirable.LRU[string, entry]
}

func New(size int, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PageCache{
		lru: expirable.NewLRU[string, entry](size, nil, ttl),
	}
}

// Clear drops every cached page.
func (p *PageCache) Clear() {
	p.lru.Purge()
}

type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Middleware replays a cached copy of the rendered page, keyed by
// request URI, and captures successful GET responses for later hits.
func (p *PageCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if e, ok := p.lru.Get(key); ok {
			c.Data(http.StatusOK, e.contentType, e.body)
			c.Abort()
			return
		}

		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		if c.Writer.Status() == http.StatusOK {
			p.lru.Add(key, entry{
				contentType: w.Header().Get("Content-Type"),
				body:        w.buf.Bytes(),
			})
		}
	}
}
