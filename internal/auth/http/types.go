package http

import (
	"context"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/service"
)

// Sessions is the part of the session registry the auth endpoints use.
type Sessions interface {
	Session(ctx context.Context, id auth.Identity) (*service.Coordinator, error)
	End(ownerID string) bool
}

type Handler struct {
	sessions Sessions
}

func New(sessions Sessions) *Handler {
	return &Handler{
		sessions: sessions,
	}
}
