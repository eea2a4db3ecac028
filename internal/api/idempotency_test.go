package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRedis is an in-memory RedisClient good enough for the middleware.
type stubRedis struct {
	mu   sync.Mutex
	data map[string]string
}

func newStubRedis() *stubRedis {
	return &stubRedis{data: make(map[string]string)}
}

func (s *stubRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.data[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (s *stubRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (s *stubRedis) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	s.data[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func newIdempotentRouter(rdb RedisClient, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Idempotency(rdb))
	r.POST("/bookings", func(c *gin.Context) {
		(*calls)++
		c.JSON(http.StatusCreated, gin.H{"attempt": *calls})
	})
	r.GET("/bookings", func(c *gin.Context) {
		(*calls)++
		c.JSON(http.StatusOK, gin.H{"attempt": *calls})
	})
	return r
}

func doRequest(r *gin.Engine, method, path, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if key != "" {
		req.Header.Set("X-Idempotency-Key", key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyReplaysCompletedResponse(t *testing.T) {
	calls := 0
	r := newIdempotentRouter(newStubRedis(), &calls)

	first := doRequest(r, http.MethodPost, "/bookings", `{"a":1}`, "key-1")
	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, 1, calls)

	second := doRequest(r, http.MethodPost, "/bookings", `{"a":1}`, "key-1")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String(), "retry should replay the stored response")
	assert.Equal(t, 1, calls, "handler must not run twice")
}

func TestIdempotencyRejectsKeyReuseWithDifferentRequest(t *testing.T) {
	calls := 0
	r := newIdempotentRouter(newStubRedis(), &calls)

	first := doRequest(r, http.MethodPost, "/bookings", `{"a":1}`, "key-1")
	require.Equal(t, http.StatusCreated, first.Code)

	reused := doRequest(r, http.MethodPost, "/bookings", `{"a":2}`, "key-1")
	assert.Equal(t, http.StatusUnprocessableEntity, reused.Code)
	assert.Equal(t, 1, calls)
}

func TestIdempotencySkipsKeylessAndReadRequests(t *testing.T) {
	calls := 0
	r := newIdempotentRouter(newStubRedis(), &calls)

	doRequest(r, http.MethodPost, "/bookings", `{"a":1}`, "")
	doRequest(r, http.MethodPost, "/bookings", `{"a":1}`, "")
	assert.Equal(t, 2, calls, "keyless writes pass through untouched")

	doRequest(r, http.MethodGet, "/bookings", "", "key-1")
	doRequest(r, http.MethodGet, "/bookings", "", "key-1")
	assert.Equal(t, 4, calls, "reads pass through untouched")
}

func TestIdempotencyReportsInProgressRequests(t *testing.T) {
	calls := 0
	rdb := newStubRedis()
	r := newIdempotentRouter(rdb, &calls)

	// Seed a processing record as a concurrent in-flight request would.
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(`{"a":1}`))
	rec := &idempotencyRecord{
		Status:      statusProcessing,
		RequestHash: requestHashForTest(req, `{"a":1}`),
		CreatedAt:   time.Now().UTC(),
	}
	require.True(t, trySetRecord(context.Background(), rdb, idempotencyKeyPrefix+"key-1", rec, processingTTL))

	w := doRequest(r, http.MethodPost, "/bookings", `{"a":1}`, "key-1")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, calls)
}

func requestHashForTest(req *http.Request, body string) string {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return requestHash(c, []byte(body))
}
