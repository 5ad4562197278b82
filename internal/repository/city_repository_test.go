package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/sakila-admin/internal/database/dbtest"
	"github.com/iliyamo/sakila-admin/internal/model"
)

func TestCityRepo_ListWithCountry(t *testing.T) {
	db := dbtest.Open(t)
	cities, err := NewCityRepo(db).ListWithCountry(context.Background())
	require.NoError(t, err)
	require.Len(t, cities, 3)
	assert.Equal(t, model.CityRow{ID: 3, Name: "Toronto", Country: "Canada"}, cities[2])
}

func TestCityRepo_CreateChecksCountry(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewCityRepo(db)
	ctx := context.Background()

	err := repo.Create(ctx, &model.City{Name: "Nowhere", CountryID: 99})
	assert.ErrorIs(t, err, ErrCountryNotFound)
	assert.Equal(t, 3, dbtest.Count(t, db, "SELECT COUNT(*) FROM city"))

	c := &model.City{Name: "Montreal", CountryID: 3}
	require.NoError(t, repo.Create(ctx, c))
	assert.Equal(t, int64(4), c.ID)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, *c, *got)
}

func TestCityRepo_Update(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewCityRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Update(ctx, model.City{ID: 3, Name: "X", CountryID: 2}))
	got, err := repo.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, model.City{ID: 3, Name: "X", CountryID: 2}, *got)
}

// Update does not check the country; the foreign key constraint rejects it.
func TestCityRepo_UpdateDoesNotValidateCountry(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewCityRepo(db)

	err := repo.Update(context.Background(), model.City{ID: 3, Name: "X", CountryID: 99})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCountryNotFound)
}

func TestCityRepo_GetByIDNotFound(t *testing.T) {
	db := dbtest.Open(t)
	_, err := NewCityRepo(db).GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrCityNotFound)
}

func TestCountryRepo_ListOrderedByName(t *testing.T) {
	db := dbtest.Open(t)
	_, err := db.Exec("INSERT INTO country (country, country_id) VALUES ('Aaland', 10)")
	require.NoError(t, err)

	countries, err := NewCountryRepo(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, countries, 4)
	assert.Equal(t, "Aaland", countries[0].Name)
	assert.Equal(t, "Canada", countries[3].Name)
}

func TestLanguageRepo_List(t *testing.T) {
	db := dbtest.Open(t)
	langs, err := NewLanguageRepo(db).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Language{{ID: 1, Name: "English"}, {ID: 2, Name: "Italian"}}, langs)
}

func TestCountryRepo_Exists(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewCountryRepo(db)
	ctx := context.Background()

	for id, want := range map[int64]bool{1: true, 3: true, 0: false, 99: false} {
		got, err := repo.Exists(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got, "country %d", id)
	}
}
