package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondInternalError отвечает универсальным problem-payload для
// необработанных ошибок. Сообщение обрезается, ретраев нет -
// ошибка сразу уходит вызывающему
func respondInternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "An unexpected error occurred.",
		"details": truncateError(err),
	})
}

func truncateError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
