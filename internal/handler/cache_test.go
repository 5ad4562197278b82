package handler_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/sakila-admin/internal/config"
	"github.com/iliyamo/sakila-admin/internal/database/dbtest"
	"github.com/iliyamo/sakila-admin/internal/handler"
	"github.com/iliyamo/sakila-admin/internal/router"
)

// newRedisServer builds the full router with Redis and the cache settings
// read from the environment, as serve does.
func newRedisServer(t *testing.T) *testServer {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	db := dbtest.Open(t)
	events := &recordingPublisher{}
	e := router.New(router.Options{
		Handler:   handler.New(db, events),
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
	})
	return &testServer{e: e, db: db, events: events}
}

func TestDefaultConfigReadsStoreEveryTime(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "")
	s := newRedisServer(t)

	rec := s.get("/actors")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))

	_, err := s.db.Exec("INSERT INTO actor (first_name, last_name) VALUES ('ZED', 'ZULU')")
	require.NoError(t, err)

	rec = s.get("/actors")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Contains(t, rec.Body.String(), "ZULU")
}

func TestEnabledCacheShowsWriteOnNextRead(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "true")
	s := newRedisServer(t)

	s.get("/actors")
	rec := s.get("/actors")
	require.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	rec = s.post("/actor/create", url.Values{"first_name": {"Ann"}, "last_name": {"Lee"}})
	assertRedirect(t, rec, "/actors")

	rec = s.get("/actors")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Contains(t, rec.Body.String(), "<td>Lee</td>")
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
