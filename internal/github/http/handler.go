// Package http exposes the repository listing proxy.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/github"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
)

// Handler serves GET /github/repos/:username from a (cached) Source.
type Handler struct {
	source github.Source
	logger *zap.Logger
}

func New(source github.Source, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{source: source, logger: logger}
}

// Register attaches the proxy route to the given router.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/github/repos/:username", h.repositories)
}

func (h *Handler) repositories(c *gin.Context) {
	name, err := github.NormalizeUsername(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	repos, err := h.source.Repositories(c.Request.Context(), name)
	if err != nil {
		status, body := ErrorResponse(err)
		if status >= http.StatusInternalServerError {
			logging.From(c.Request.Context(), h.logger).Warn("repository listing failed",
				zap.String("username", name), zap.Error(err))
		}
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, repos)
}

// ErrorResponse maps an import adapter error to a status code and body.
func ErrorResponse(err error) (int, gin.H) {
	var upstream *github.UpstreamError
	switch {
	case errors.Is(err, github.ErrUsernameRequired):
		return http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()}
	case errors.Is(err, github.ErrNotFound):
		return http.StatusNotFound, gin.H{"ok": false, "error": "username not found"}
	case errors.As(err, &upstream):
		return http.StatusBadGateway, gin.H{"ok": false, "error": upstream.Error(), "status": upstream.StatusCode}
	case errors.Is(err, github.ErrUpstream):
		return http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()}
	case errors.Is(err, github.ErrUnreachable):
		return http.StatusServiceUnavailable, gin.H{"ok": false, "error": "backing service unreachable"}
	default:
		return http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()}
	}
}

// IsAdapterError reports whether err is one ErrorResponse maps specifically.
func IsAdapterError(err error) bool {
	return errors.Is(err, github.ErrUsernameRequired) ||
		errors.Is(err, github.ErrNotFound) ||
		errors.Is(err, github.ErrUpstream) ||
		errors.Is(err, github.ErrUnreachable)
}
