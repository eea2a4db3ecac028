package api

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/rentspot/rental-booking-backend/internal/auth"
	"github.com/rentspot/rental-booking-backend/internal/pkg/response"
)

const (
	idempotencyHeader    = "X-Idempotency-Key"
	idempotencyKeyPrefix = "idempotency:"

	completedTTL  = 24 * time.Hour
	processingTTL = 60 * time.Second
)

type recordStatus string

const (
	statusProcessing recordStatus = "processing"
	statusCompleted  recordStatus = "completed"
)

type idempotencyRecord struct {
	Status       recordStatus `json:"status"`
	RequestHash  string       `json:"request_hash"`
	ResponseCode int          `json:"response_code"`
	ResponseBody string       `json:"response_body"`
	CreatedAt    time.Time    `json:"created_at"`
}

// RedisClient is the subset of redis.Client this middleware needs,
// kept small so tests can stub it.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// Idempotency deduplicates retried write requests carrying an
// X-Idempotency-Key header. Keyless requests and reads pass through.
// Redis failures fail open so the middleware never takes down writes.
func Idempotency(rdb RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		hash := requestHash(c, bodyBytes)
		redisKey := idempotencyKeyPrefix + key
		ctx := c.Request.Context()

		existing, err := getRecord(ctx, rdb, redisKey)
		if err != nil && !errors.Is(err, redis.Nil) {
			c.Next()
			return
		}

		if existing != nil {
			replay(c, existing, hash)
			return
		}

		record := &idempotencyRecord{
			Status:      statusProcessing,
			RequestHash: hash,
			CreatedAt:   time.Now().UTC(),
		}
		if !trySetRecord(ctx, rdb, redisKey, record, processingTTL) {
			// Lost the race; the other request holds the key.
			existing, err := getRecord(ctx, rdb, redisKey)
			if err == nil && existing != nil {
				replay(c, existing, hash)
				return
			}
			c.Next()
			return
		}

		rw := &captureWriter{ResponseWriter: c.Writer, body: bytes.NewBuffer(nil)}
		c.Writer = rw

		c.Next()

		record.Status = statusCompleted
		record.ResponseCode = rw.Status()
		record.ResponseBody = rw.body.String()
		saveRecord(ctx, rdb, redisKey, record, completedTTL)
	}
}

// replay answers from a stored record without re-running the handler.
func replay(c *gin.Context, rec *idempotencyRecord, hash string) {
	if rec.RequestHash != hash {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity,
			response.ErrorResponse{Error: "idempotency key already used with a different request"})
		return
	}
	if rec.Status == statusProcessing {
		c.AbortWithStatusJSON(http.StatusConflict,
			response.ErrorResponse{Error: "a request with this idempotency key is already being processed"})
		return
	}
	c.Data(rec.ResponseCode, "application/json", []byte(rec.ResponseBody))
	c.Abort()
}

func requestHash(c *gin.Context, body []byte) string {
	h := sha256.New()
	h.Write([]byte(c.Request.Method))
	h.Write([]byte(c.Request.URL.Path))
	if id := auth.GetCustomerID(c); id != "" {
		h.Write([]byte(id))
	}
	if len(body) > 0 {
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func getRecord(ctx context.Context, rdb RedisClient, key string) (*idempotencyRecord, error) {
	raw, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var rec idempotencyRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func trySetRecord(ctx context.Context, rdb RedisClient, key string, rec *idempotencyRecord, ttl time.Duration) bool {
	data, err := json.Marshal(rec)
	if err != nil {
		return false
	}
	ok, err := rdb.SetNX(ctx, key, string(data), ttl).Result()
	return err == nil && ok
}

func saveRecord(ctx context.Context, rdb RedisClient, key string, rec *idempotencyRecord, ttl time.Duration) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	rdb.Set(ctx, key, string(data), ttl)
}

// captureWriter buffers the response body so it can be stored for replays.
type captureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
