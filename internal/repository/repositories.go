package repository

import (
	"github.com/obolabs/obo-server/internal/database"
)

// Repositories is a container for all repository instances, so wiring
// passes one object around instead of many.
type Repositories struct {
	Decks *DeckRepository
}

// NewRepositories constructs the repository container over the shared
// database pool.
func NewRepositories(db *database.Database) *Repositories {
	return &Repositories{
		Decks: NewDeckRepository(db),
	}
}
