package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyHeader = "Idempotency-Key"
	idempotencyTTL    = 24 * time.Hour
)

// ResponseCache stores replayable responses for the idempotency middleware.
type ResponseCache interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// RedisResponseCache is a Redis-backed ResponseCache.
type RedisResponseCache struct {
	client *redis.Client
}

// NewRedisResponseCache creates a new RedisResponseCache.
func NewRedisResponseCache(client *redis.Client) *RedisResponseCache {
	return &RedisResponseCache{client: client}
}

func (c *RedisResponseCache) GetBytes(ctx context.Context, key string) ([]byte, error) {
	return c.client.Get(ctx, key).Bytes()
}

func (c *RedisResponseCache) SetBytes(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, data, ttl).Err()
}

var _ ResponseCache = (*RedisResponseCache)(nil)

// cachedResponse stores the response for idempotent requests.
type cachedResponse struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body"`
}

// responseWriter wraps gin.ResponseWriter to capture the response body.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the cached response for repeated mutating requests
// carrying the same Idempotency-Key, so a retried trip creation never
// produces a second trip document. Requests without the header pass through
// untouched.
func Idempotency(cache ResponseCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		cacheKey := "idempotency:" + c.Request.Method + ":" + c.FullPath() + ":" + key

		if data, err := cache.GetBytes(c.Request.Context(), cacheKey); err == nil {
			var cached cachedResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				c.Data(cached.StatusCode, "application/json", cached.Body)
				c.Abort()
				return
			}
		}

		writer := &responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		// Only successful responses are worth replaying; a failed attempt may
		// legitimately be retried.
		if writer.Status() >= 200 && writer.Status() < 300 {
			cached := cachedResponse{
				StatusCode: writer.Status(),
				Body:       json.RawMessage(writer.body.Bytes()),
			}
			if data, err := json.Marshal(cached); err == nil {
				_ = cache.SetBytes(context.Background(), cacheKey, data, idempotencyTTL)
			}
		}
	}
}
