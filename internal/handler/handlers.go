package handler

import (
	"github.com/obolabs/obo-server/internal/server"
	"github.com/obolabs/obo-server/internal/service"
)

// Handlers is a container that groups all HTTP handlers so router
// setup receives a single wired object.
type Handlers struct {
	Health *HealthHandler
	Decks  *DeckHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s, services.Decks),
		Decks:  NewDeckHandler(s, services.Decks),
	}
}
