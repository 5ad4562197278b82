package handler_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/sakila-admin/internal/database/dbtest"
	"github.com/iliyamo/sakila-admin/internal/queue"
)

func TestListActors(t *testing.T) {
	s := newTestServer(t)
	rec := s.get("/actors")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "PENELOPE")
	assert.Contains(t, body, "LOLLOBRIGIDA")
	assert.Contains(t, body, `href="/actor/3/edit"`)
}

func TestCreateActorThenListed(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/actor/create")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/actor/create"`)

	rec = s.post("/actor/create", url.Values{"first_name": {"Ann"}, "last_name": {"Lee"}})
	assertRedirect(t, rec, "/actors")

	rec = s.get("/actors")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<td>6</td>")
	assert.Contains(t, body, "<td>Ann</td>")
	assert.Contains(t, body, "<td>Lee</td>")

	events := s.events.all()
	require.Len(t, events, 1)
	assert.Equal(t, queue.EntityActor, events[0].Entity)
	assert.Equal(t, queue.ActionCreated, events[0].Action)
	assert.Equal(t, int64(6), events[0].ID)
}

func TestCreateActorRejectsMissingName(t *testing.T) {
	s := newTestServer(t)
	rec := s.post("/actor/create", url.Values{"first_name": {"Ann"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "last_name")
	assert.Equal(t, 5, dbtest.Count(t, s.db, "SELECT COUNT(*) FROM actor"))
	assert.Empty(t, s.events.all())
}

func TestEditActor(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/actor/2/edit")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="NICK"`)

	rec = s.post("/actor/2/edit", url.Values{"first_name": {"NICHOLAS"}, "last_name": {"WAHLBERG"}})
	assertRedirect(t, rec, "/actors")
	assert.Equal(t, 1, dbtest.Count(t, s.db, "SELECT COUNT(*) FROM actor WHERE actor_id = 2 AND first_name = 'NICHOLAS'"))
}

func TestDeleteActorRemovesFilmLinks(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/actor/5/delete")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "JOHNNY")

	rec = s.post("/actor/5/delete", url.Values{})
	assertRedirect(t, rec, "/actors")

	assert.Zero(t, dbtest.Count(t, s.db, "SELECT COUNT(*) FROM actor WHERE actor_id = 5"))
	assert.Zero(t, dbtest.Count(t, s.db, "SELECT COUNT(*) FROM film_actor WHERE actor_id = 5"))
	assert.Equal(t, []int64{1}, dbtest.FilmActorIDs(t, s.db, 1))
	assert.NotContains(t, s.get("/actors").Body.String(), "LOLLOBRIGIDA")

	events := s.events.all()
	require.Len(t, events, 1)
	assert.Equal(t, queue.ActionDeleted, events[0].Action)
}
