package http

import (
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/repository"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/service"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	sessions *service.Registry
	store    repository.Store
	logger   *zap.Logger
}

func New(sessions *service.Registry, store repository.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{sessions: sessions, store: store, logger: logger}
}

type importReq struct {
	Username string  `json:"username"`
	RepoIDs  []int64 `json:"repo_ids"`
}

// replaceReq is the body of POST /projects/:uid. Projects is a pointer so a
// missing field can be told apart from an empty list.
type replaceReq struct {
	Projects *[]domain.Project `json:"projects"`
}
