package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/sakila-admin/internal/model"
)

// CityRepo encapsulates queries against the city table.
type CityRepo struct {
	db *sql.DB
}

// NewCityRepo constructs a CityRepo with the provided DB handle.
func NewCityRepo(db *sql.DB) *CityRepo {
	return &CityRepo{db: db}
}

// ListWithCountry returns every city together with its country's name.
func (r *CityRepo) ListWithCountry(ctx context.Context) ([]model.CityRow, error) {
	const q = `SELECT city.city_id, city.city, country.country
	           FROM city
	           JOIN country ON city.country_id = country.country_id
	           ORDER BY city.city_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query cities: %w", err)
	}
	defer rows.Close()

	out := []model.CityRow{}
	for rows.Next() {
		var c model.CityRow
		if err := rows.Scan(&c.ID, &c.Name, &c.Country); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cities: %w", err)
	}
	return out, nil
}

// GetByID fetches a city.  It returns ErrCityNotFound if no row is found.
func (r *CityRepo) GetByID(ctx context.Context, id int64) (*model.City, error) {
	const q = "SELECT city_id, city, country_id FROM city WHERE city_id = ?"
	var c model.City
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.CountryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCityNotFound
		}
		return nil, fmt.Errorf("get city %d: %w", id, err)
	}
	return &c, nil
}

// Create inserts a city after checking that its country exists.  When the
// country is missing it returns ErrCountryNotFound and performs no insert.
func (r *CityRepo) Create(ctx context.Context, c *model.City) error {
	ok, err := NewCountryRepo(r.db).Exists(ctx, c.CountryID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCountryNotFound
	}

	res, err := r.db.ExecContext(ctx, "INSERT INTO city (city, country_id) VALUES (?, ?)", c.Name, c.CountryID)
	if err != nil {
		return fmt.Errorf("insert city: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert city: %w", err)
	}
	c.ID = id
	return nil
}

// Update overwrites a city's name and country.  Unlike Create it does not
// verify the country; a dangling id is left to the store's constraints.
func (r *CityRepo) Update(ctx context.Context, c model.City) error {
	const q = "UPDATE city SET city = ?, country_id = ? WHERE city_id = ?"
	if _, err := r.db.ExecContext(ctx, q, c.Name, c.CountryID, c.ID); err != nil {
		return fmt.Errorf("update city %d: %w", c.ID, err)
	}
	return nil
}

// CountryRepo reads the country reference table.
type CountryRepo struct {
	db *sql.DB
}

// NewCountryRepo constructs a CountryRepo with the provided DB handle.
func NewCountryRepo(db *sql.DB) *CountryRepo {
	return &CountryRepo{db: db}
}

// List returns all countries ordered by name.
func (r *CountryRepo) List(ctx context.Context) ([]model.Country, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT country_id, country FROM country ORDER BY country")
	if err != nil {
		return nil, fmt.Errorf("query countries: %w", err)
	}
	defer rows.Close()

	out := []model.Country{}
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate countries: %w", err)
	}
	return out, nil
}

// Exists reports whether a country with the given id is present.
func (r *CountryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM country WHERE country_id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check country %d: %w", id, err)
	}
	return true, nil
}
