package model

// City is a row of the `city` table.  Every city belongs to one country.
type City struct {
	ID        int64  // city.city_id
	Name      string // city.city
	CountryID int64  // city.country_id
}

// CityRow is a city joined with its country's name, as shown in the list view.
type CityRow struct {
	ID      int64  // city.city_id
	Name    string // city.city
	Country string // country.country
}

// Country is a row of the `country` table.
type Country struct {
	ID   int64  // country.country_id
	Name string // country.country
}
