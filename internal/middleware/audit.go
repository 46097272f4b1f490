package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/ttms-admin-api/internal/models"
)

// AuditWriter persists audit log entries.
type AuditWriter interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// Audit records an audit log entry after a successful mutation of the :entity/:id route target.
func Audit(writer AuditWriter, action string, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 || writer == nil {
			return
		}

		var userID *string
		if claims := CurrentClaims(c); claims != nil {
			userID = &claims.UserID
		}

		entity := c.Param("entity")
		id := c.Param("id")
		body, _ := json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		})
		values := string(body)
		description := fmt.Sprintf("%s %s %s", action, entity, id)

		entry := &models.AuditLog{
			UserID:      userID,
			Action:      action,
			ModelType:   nonEmpty(entity),
			ModelID:     nonEmpty(id),
			Description: &description,
			NewValues:   &values,
			IPAddress:   nonEmpty(c.ClientIP()),
			UserAgent:   nonEmpty(c.GetHeader("User-Agent")),
		}
		if err := writer.Create(c.Request.Context(), entry); err != nil {
			logger.Warn("failed to record audit log", zap.String("action", action), zap.Error(err))
		}
	}
}

func nonEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
