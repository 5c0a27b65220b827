package bootstrap

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/config"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth/middleware"
)

// RequireAuth returns Firebase token verification when credentials are
// configured, otherwise the development header fallback.
func RequireAuth(ctx context.Context, cfg config.FirebaseConfig, logger *zap.Logger) (gin.HandlerFunc, error) {
	if !cfg.Enabled() {
		logger.Warn("FIREBASE_CREDENTIALS_PATH not set, trusting X-User-Id headers")
		return middleware.HeaderAuth(), nil
	}

	client, err := auth.InitializeFirebase(ctx, &cfg)
	if err != nil {
		return nil, err
	}
	return middleware.FirebaseAuthMiddleware(client), nil
}
