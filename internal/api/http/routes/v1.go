package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authhttp "github.com/GoSim-25-26J-441/portfolio-backend/internal/auth/http"
	projecthttp "github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/http"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/repository"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/service"
)

type V1Deps struct {
	Sessions    *service.Registry
	Store       repository.Store
	RequireAuth gin.HandlerFunc
	Logger      *zap.Logger
}

// RegisterV1 mounts the whole-list store contract at the root and the
// versioned API under /api/v1.
func RegisterV1(r *gin.Engine, dep V1Deps) {
	projects := projecthttp.New(dep.Sessions, dep.Store, dep.Logger)
	projects.RegisterStore(r, dep.RequireAuth)

	api := r.Group("/api/v1")
	projects.RegisterPublic(api)

	authGroup := api.Group("/auth")
	authGroup.Use(dep.RequireAuth)
	authhttp.New(dep.Sessions).Register(authGroup)

	me := api.Group("/me")
	me.Use(dep.RequireAuth)
	projects.Register(me)
}
