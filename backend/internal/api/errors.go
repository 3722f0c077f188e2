package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	apperrors "linkedinsight/backend/pkg/errors"
)

// badRequest writes a 400 with the given detail
func badRequest(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": detail})
}

// respondError maps caller mistakes to 400 and everything else to 500
func (s *Server) respondError(c *gin.Context, action string, err error) {
	if apperrors.IsClientError(err) {
		badRequest(c, apperrors.ClientMessage(err))
		return
	}

	s.logger.Error("Request failed",
		zap.String("action", action),
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"detail": fmt.Sprintf("Error %s: %v", action, err),
	})
}
