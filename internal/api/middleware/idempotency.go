package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	IdempotencyKeyHeader   = "Idempotency-Key"
	IdempotentReplayHeader = "Idempotent-Replayed"

	idempotencyRetention = 24 * time.Hour
)

type idempotencyEntry struct {
	requestHash string
	status      int // 0 while the first request is still running
	contentType string
	body        []byte
	createdAt   time.Time
}

// IdempotencyStore remembers responses by idempotency key
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]*idempotencyEntry
	now     func() time.Time
}

// NewIdempotencyStore creates an empty store
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{entries: make(map[string]*idempotencyEntry), now: time.Now}
}

// begin claims key for a request; it returns the existing entry if the key is already known
func (s *IdempotencyStore) begin(key, requestHash string) (*idempotencyEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	if existing, ok := s.entries[key]; ok {
		copied := *existing
		return &copied, true
	}
	s.entries[key] = &idempotencyEntry{requestHash: requestHash, createdAt: s.now()}
	return nil, false
}

func (s *IdempotencyStore) finish(key string, status int, contentType string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return
	}
	// Server errors are not remembered so the client can retry with the same key
	if status >= http.StatusInternalServerError {
		delete(s.entries, key)
		return
	}
	entry.status = status
	entry.contentType = contentType
	entry.body = body
}

func (s *IdempotencyStore) pruneLocked() {
	cutoff := s.now().Add(-idempotencyRetention)
	for k, e := range s.entries {
		if e.createdAt.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

// captureWriter tees the response body so it can be replayed
type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// IdempotencyMiddleware replays the stored response when a request is repeated with the same
// Idempotency-Key and body. Keys are scoped to the session, so it must run after SessionMiddleware.
func IdempotencyMiddleware(store *IdempotencyStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only apply to POST/PUT/PATCH requests
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		// Read request body
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			logger.Error("Failed to read request body for idempotency", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process request"})
			c.Abort()
			return
		}

		// Restore body for handler
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		// Calculate request hash
		hash := sha256.New()
		hash.Write([]byte(c.Request.Method + " " + c.Request.URL.Path + "\n"))
		hash.Write(body)
		requestHash := hex.EncodeToString(hash.Sum(nil))

		scope := ""
		if sess, ok := GetSessionFromContext(c); ok {
			scope = sess.ID
		}
		key := scope + ":" + idempotencyKey

		existing, found := store.begin(key, requestHash)
		if found {
			switch {
			case existing.requestHash != requestHash:
				// Same key, different payload - conflict
				c.JSON(http.StatusConflict, gin.H{
					"error": "idempotency key conflict: same key used with different payload",
				})
			case existing.status == 0:
				c.JSON(http.StatusConflict, gin.H{"error": "a request with this idempotency key is in progress"})
			default:
				logger.Debug("Replaying idempotent response", zap.String("idempotency_key", idempotencyKey))
				c.Header(IdempotentReplayHeader, "true")
				c.Data(existing.status, existing.contentType, existing.body)
			}
			c.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		store.finish(key, writer.Status(), writer.Header().Get("Content-Type"), writer.body.Bytes())
	}
}
