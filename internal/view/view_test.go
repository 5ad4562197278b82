package view

import (
	"bytes"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/sakila-admin/internal/model"
)

var sampleActors = []model.Actor{
	{ID: 1, FirstName: "PENELOPE", LastName: "GUINESS"},
	{ID: 2, FirstName: "NICK", LastName: "WAHLBERG"},
	{ID: 3, FirstName: "ED", LastName: "CHASE"},
}

func TestNewFilmForm_ChecksCurrentActors(t *testing.T) {
	film := &model.Film{ID: 7, Title: "T", LanguageID: 2}
	langs := []model.Language{{ID: 1, Name: "English"}, {ID: 2, Name: "Italian"}}

	form := NewFilmForm(film, langs, []int64{3, 1}, sampleActors)

	assert.Equal(t, "/film/7/update", form.Action)
	assert.Equal(t, []int64{3, 1}, form.CurrentActorIDs)
	require.Len(t, form.Actors, 3)
	assert.True(t, form.Actors[0].Selected)
	assert.False(t, form.Actors[1].Selected)
	assert.True(t, form.Actors[2].Selected)
	assert.Equal(t, "ED CHASE", form.Actors[2].Label)
	assert.False(t, form.Languages[0].Selected)
	assert.True(t, form.Languages[1].Selected)
}

func TestNewFilmForm_Create(t *testing.T) {
	form := NewFilmForm(nil, []model.Language{{ID: 1, Name: "English"}}, nil, sampleActors)
	assert.Equal(t, "/film/create", form.Action)
	for _, a := range form.Actors {
		assert.False(t, a.Selected)
	}
	assert.False(t, form.Languages[0].Selected)
}

func TestNewCityForm_SelectsCountry(t *testing.T) {
	countries := []model.Country{{ID: 1, Name: "Afghanistan"}, {ID: 3, Name: "Canada"}}
	form := NewCityForm(&model.City{ID: 3, Name: "Toronto", CountryID: 3}, countries)
	assert.Equal(t, "/city/3/update", form.Action)
	assert.Equal(t, []Option{{ID: 1, Label: "Afghanistan"}, {ID: 3, Label: "Canada", Selected: true}}, form.Countries)

	create := NewCityForm(nil, countries)
	assert.Equal(t, "/city/create", create.Action)
}

func TestNewFilmRow_FlattensNulls(t *testing.T) {
	row := NewFilmRow(model.Film{ID: 1, Title: "A"})
	assert.Equal(t, "", row.Description)
	assert.Equal(t, "", row.ReleaseYear)

	row = NewFilmRow(model.Film{
		ID:          1,
		Title:       "A",
		Description: sql.NullString{String: "d", Valid: true},
		ReleaseYear: sql.NullInt64{Int64: 2006, Valid: true},
	})
	assert.Equal(t, "d", row.Description)
	assert.Equal(t, "2006", row.ReleaseYear)
}

func TestRenderer_RendersEveryView(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	film := &model.Film{ID: 7, Title: "ACADEMY DINOSAUR", LanguageID: 1}
	views := map[string]any{
		"actors":       NewActorList(sampleActors),
		"actor_form":   NewActorForm(&sampleActors[0]),
		"actor_delete": NewActorDelete(sampleActors[0]),
		"cities":       NewCityList([]model.CityRow{{ID: 1, Name: "Kabul", Country: "Afghanistan"}}),
		"city_form":    NewCityForm(nil, []model.Country{{ID: 1, Name: "Afghanistan"}}),
		"films":        NewFilmList([]model.Film{*film}),
		"film_search":  NewFilmSearch(nil, "ACE", "3"),
		"film_detail":  NewFilmDetail(model.FilmDetail{Film: *film, Language: "English"}, sampleActors),
		"film_form":    NewFilmForm(film, []model.Language{{ID: 1, Name: "English"}}, []int64{1}, sampleActors),
	}
	for name, data := range views {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.Render(&buf, name, data, nil))
			assert.Contains(t, buf.String(), "<nav>")
		})
	}
}

func TestRenderer_FormMarkup(t *testing.T) {
	r := MustRenderer()
	var buf bytes.Buffer
	form := NewFilmForm(&model.Film{ID: 7, Title: "A", LanguageID: 1}, []model.Language{{ID: 1, Name: "English"}}, []int64{2}, sampleActors)
	require.NoError(t, r.Render(&buf, "film_form", form, nil))

	html := buf.String()
	assert.Contains(t, html, `value="2" checked`)
	assert.NotContains(t, html, `value="1" checked`)
	assert.Contains(t, html, `<option value="1" selected>English</option>`)
}

func TestRenderer_UnknownView(t *testing.T) {
	var buf bytes.Buffer
	err := MustRenderer().Render(&buf, "nope", nil, nil)
	assert.Error(t, err)
}

func TestRenderer_EscapesValues(t *testing.T) {
	var buf bytes.Buffer
	data := NewActorList([]model.Actor{{ID: 1, FirstName: "<script>", LastName: "x"}})
	require.NoError(t, MustRenderer().Render(&buf, "actors", data, nil))
	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}
