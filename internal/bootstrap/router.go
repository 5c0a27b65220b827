package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpapi "github.com/GoSim-25-26J-441/portfolio-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/api/http/routes"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/github"
	ghhttp "github.com/GoSim-25-26J-441/portfolio-backend/internal/github/http"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/repository"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Backend     string
	CORSOrigins []string
	Store       repository.Store
	Sessions    *service.Registry
	Source      github.Source
	RequireAuth gin.HandlerFunc
	Logger      *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	if dep.Logger == nil {
		dep.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	pinger, _ := dep.Store.(repository.Pinger)
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Backend, pinger)
	healthHandler.RegisterRoutes(r)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ghhttp.New(dep.Source, dep.Logger).Register(r)

	routes.RegisterV1(r, routes.V1Deps{
		Sessions:    dep.Sessions,
		Store:       dep.Store,
		RequireAuth: dep.RequireAuth,
		Logger:      dep.Logger,
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-User-Id", "X-User-Name", "X-User-Email", middleware.HeaderRequestID)
	cfg.ExposeHeaders = []string{middleware.HeaderRequestID}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
