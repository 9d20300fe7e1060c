// Package service contains the read operations behind the handlers.
//
// It sits between the handler and repository layers: handlers pass it
// validated input, it calls the repository (and the optional cache)
// and returns domain values for the handlers to shape into responses.
package service

import (
	"time"

	"github.com/obolabs/obo-server/internal/repository"
	"github.com/obolabs/obo-server/internal/server"
)

// Services is a container that groups all service instances.
type Services struct {
	Decks *DeckService
}

// NewServices constructs the service container from the application
// container and the repositories.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	cacheTTL := time.Duration(s.Config.Redis.CacheTTL) * time.Second

	return &Services{
		Decks: NewDeckService(repos.Decks, s.Redis, cacheTTL, s.Logger),
	}
}
