package model

// Doctor is read-only from this service's perspective; rows are seeded
// directly in the database.
type Doctor struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Specialty string `db:"specialty" json:"specialty"`
}
