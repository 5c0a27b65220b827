package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	ghhttp "github.com/GoSim-25-26J-441/portfolio-backend/internal/github/http"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/service"
)

func (h *Handler) writeError(c *gin.Context, err error) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": "validation failed", "fields": verrs})
	case errors.Is(err, domain.ErrStoreWrite):
		logging.From(c.Request.Context(), h.logger).Warn("store write failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "could not save projects, try again"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	case errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, service.ErrNoSession):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "session ended, try again"})
	case errors.Is(err, service.ErrSearchSuperseded), errors.Is(err, service.ErrDuplicateID):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, service.ErrNoSearch), errors.Is(err, service.ErrNothingSelected):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, service.ErrImportUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": err.Error()})
	case ghhttp.IsAdapterError(err):
		status, body := ghhttp.ErrorResponse(err)
		c.JSON(status, body)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"ok": false, "error": "request cancelled"})
	default:
		logging.From(c.Request.Context(), h.logger).Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
