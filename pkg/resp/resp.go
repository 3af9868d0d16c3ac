package resp

import (
	"errors"
	"net/http"

	"storerating/services"
	"storerating/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func OK(c *gin.Context, body gin.H) {
	write(c, http.StatusOK, body)
}
func Created(c *gin.Context, body gin.H) {
	write(c, http.StatusCreated, body)
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}
func Forbidden(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": msg})
}
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": msg})
}

// ServerError log สาเหตุจริงฝั่ง server แต่ตอบ client แบบกลาง ๆ
func ServerError(c *gin.Context, log logrus.FieldLogger, err error) {
	log.WithFields(logrus.Fields{
		"requestId": utils.RequestID(c),
		"method":    c.Request.Method,
		"path":      c.FullPath(),
	}).WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Internal server error"})
}

// Error แปลง error จาก services เป็น status code
func Error(c *gin.Context, log logrus.FieldLogger, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": verr.Error(), "fields": verr.Fields})
	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": services.PublicMessage(err)})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": services.PublicMessage(err)})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": services.PublicMessage(err)})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": services.PublicMessage(err)})
	default:
		ServerError(c, log, err)
	}
}

func write(c *gin.Context, status int, body gin.H) {
	out := gin.H{"ok": true}
	for k, v := range body {
		out[k] = v
	}
	c.JSON(status, out)
}
