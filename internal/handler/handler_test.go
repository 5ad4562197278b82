package handler_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/sakila-admin/internal/database/dbtest"
	"github.com/iliyamo/sakila-admin/internal/handler"
	"github.com/iliyamo/sakila-admin/internal/queue"
	"github.com/iliyamo/sakila-admin/internal/router"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.CatalogEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.CatalogEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) all() []queue.CatalogEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]queue.CatalogEvent(nil), p.events...)
}

type testServer struct {
	e      *echo.Echo
	db     *sql.DB
	events *recordingPublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := dbtest.Open(t)
	events := &recordingPublisher{}
	e := router.New(router.Options{Handler: handler.New(db, events)})
	return &testServer{e: e, db: db, events: events}
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, location, rec.Header().Get(echo.HeaderLocation))
}

func TestHealthAndRoot(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = s.get("/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/films", rec.Header().Get(echo.HeaderLocation))
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	rec := s.get("/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextPlain)
}

func TestMalformedIDIsBadRequest(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/actor/abc/edit", "/actor/0/delete", "/city/x/update", "/film/-3", "/film/1.5/update"} {
		t.Run(path, func(t *testing.T) {
			rec := s.get(path)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "invalid id", rec.Body.String())
		})
	}
}

func TestMissingIDIsNotFound(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/actor/999/edit", "/actor/999/delete", "/city/999/update", "/film/999", "/film/999/update"} {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, http.StatusNotFound, s.get(path).Code)
		})
	}
}
