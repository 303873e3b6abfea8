package middlewares

import (
	"bytes"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/yeremiapane/foodiego/telemetry"
)

const cacheHeader = "X-Cache"

type cachedPage struct {
	contentType string
	body        []byte
	tags        []string
}

// PageCache keeps rendered GET responses until they expire or one of the
// page paths they are tagged with is revalidated.
type PageCache struct {
	store *cache.Cache
	// generation advances on every Revalidate. A render that started in an
	// older generation is not stored.
	generation atomic.Uint64
}

func NewPageCache(ttl time.Duration) *PageCache {
	return &PageCache{store: cache.New(ttl, 2*ttl)}
}

type cachingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *cachingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *cachingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Middleware serves cached copies of successful GET responses. tags are the
// page paths the response renders.
func (pc *PageCache) Middleware(tags ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if v, ok := pc.store.Get(key); ok {
			page := v.(*cachedPage)
			telemetry.PageCacheLookupsTotal.WithLabelValues("hit").Inc()
			c.Header(cacheHeader, "HIT")
			c.Data(http.StatusOK, page.contentType, page.body)
			c.Abort()
			return
		}

		telemetry.PageCacheLookupsTotal.WithLabelValues("miss").Inc()
		c.Header(cacheHeader, "MISS")
		generation := pc.generation.Load()
		writer := &cachingWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		if writer.Status() != http.StatusOK || pc.generation.Load() != generation {
			return
		}
		pc.store.SetDefault(key, &cachedPage{
			contentType: writer.Header().Get("Content-Type"),
			body:        writer.body.Bytes(),
			tags:        tags,
		})
		// A Revalidate that raced the store may have scanned before it.
		if pc.generation.Load() != generation {
			pc.store.Delete(key)
		}
	}
}

// Revalidate evicts every cached response tagged with one of paths.
func (pc *PageCache) Revalidate(paths ...string) {
	pc.generation.Add(1)
	for key, item := range pc.store.Items() {
		page, ok := item.Object.(*cachedPage)
		if !ok {
			continue
		}
		if tagged(page.tags, paths) {
			pc.store.Delete(key)
		}
	}
}

// Len is the number of cached responses, expired ones included until cleanup.
func (pc *PageCache) Len() int {
	return pc.store.ItemCount()
}

func tagged(tags, paths []string) bool {
	for _, tag := range tags {
		for _, path := range paths {
			if tag == path {
				return true
			}
		}
	}
	return false
}
