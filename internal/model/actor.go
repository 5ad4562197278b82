package model

// Actor represents a performer as stored in the `actor` table.  Actors are
// linked to films through the film_actor join table.
//
// Fields:
//
//	ID        – primary key identifier.
//	FirstName – given name, at most 45 characters.
//	LastName  – family name, at most 45 characters.
type Actor struct {
	ID        int64  // actor.actor_id
	FirstName string // actor.first_name
	LastName  string // actor.last_name
}

// FullName joins first and last name with a single space.
func (a Actor) FullName() string {
	return a.FirstName + " " + a.LastName
}
