package utils

import (
	"storerating/entity"

	"github.com/gin-gonic/gin"
)

// คีย์ที่ auth middleware ใช้เก็บตัวตนใน gin.Context
const (
	CtxUserID    = "userId"
	CtxEmail     = "email"
	CtxRole      = "role"
	CtxRequestID = "requestId"
)

func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get(CtxUserID)
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	default:
		return 0
	}
}

func CurrentRole(c *gin.Context) entity.Role {
	if v, ok := c.Get(CtxRole); ok {
		if r, ok := v.(entity.Role); ok {
			return r
		}
	}
	return ""
}

func CurrentEmail(c *gin.Context) string {
	return c.GetString(CtxEmail)
}

func RequestID(c *gin.Context) string {
	return c.GetString(CtxRequestID)
}
