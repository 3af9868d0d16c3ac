package middlewares

import (
	"context"
	"errors"
	"strings"

	"storerating/entity"
	"storerating/pkg/resp"
	"storerating/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserLookup ใช้อ่าน role ปัจจุบันจาก DB (เฉพาะเมื่อเปิด refresh role)
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

type AuthConfig struct {
	Secret string
	// nil = เชื่อ role ใน token จนกว่าจะ login ใหม่
	RefreshRole UserLookup
	Log         logrus.FieldLogger
}

// AuthMiddleware ตรวจ token แล้วแนบ userId/email/role ไว้ใน context
func AuthMiddleware(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			resp.Unauthorized(c, "Access token required")
			return
		}
		if !strings.HasPrefix(h, "Bearer ") {
			resp.Unauthorized(c, "Invalid authorization header")
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))

		claims, err := utils.ParseToken(tokenStr, cfg.Secret)
		if err != nil {
			resp.Unauthorized(c, "Invalid or expired token")
			return
		}

		role := claims.Role
		if cfg.RefreshRole != nil {
			user, err := cfg.RefreshRole.FindByID(c.Request.Context(), claims.UserID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				resp.Unauthorized(c, "User no longer exists")
				return
			}
			if err != nil {
				resp.ServerError(c, cfg.Log, err)
				c.Abort()
				return
			}
			role = user.Role
		}

		c.Set(utils.CtxUserID, claims.UserID)
		c.Set(utils.CtxEmail, claims.Email)
		c.Set(utils.CtxRole, role)
		c.Next()
	}
}

// RequireRole ต้องวางหลัง AuthMiddleware
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	allowed := map[entity.Role]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := allowed[utils.CurrentRole(c)]; !ok {
			resp.Forbidden(c, "You do not have access to this resource")
			return
		}
		c.Next()
	}
}
