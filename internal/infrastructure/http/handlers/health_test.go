package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestLiveness(t *testing.T) {
	rec := serve(t, NewHealthHandler().Liveness)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadiness_AllHealthy(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	h := NewReadinessHandler(map[string]Checker{
		"mongodb": func(context.Context) error { return nil },
		"redis":   RedisChecker(rdb),
	})
	rec := serve(t, h.Readiness)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body readinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ok", body.Dependencies["redis"].Status)
}

func TestReadiness_Degraded(t *testing.T) {
	h := NewReadinessHandler(map[string]Checker{
		"mongodb": func(context.Context) error { return errors.New("no reachable servers") },
		"redis":   func(context.Context) error { return nil },
	})
	rec := serve(t, h.Readiness)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body readinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "unhealthy", body.Dependencies["mongodb"].Status)
	assert.Equal(t, "no reachable servers", body.Dependencies["mongodb"].Error)
}
