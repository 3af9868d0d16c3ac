package controllers

import (
	"errors"
	"sync"

	"storerating/pkg/resp"
	"storerating/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var setupBinding sync.Once

// SetupBinding ให้ gin binding ใช้ชื่อ json และ custom tag ชุดเดียวกับ services
func SetupBinding() {
	setupBinding.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			services.RegisterRules(v)
		}
	})
}

// bindJSON ตอบ 400 เองถ้า body ผิด; tag ผิดจะได้ fields กลับไปด้วย
func bindJSON(c *gin.Context, log logrus.FieldLogger, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var fes validator.ValidationErrors
	if errors.As(err, &fes) {
		resp.Error(c, log, services.FromFieldErrors(fes))
		return false
	}
	resp.BadRequest(c, "invalid request body")
	return false
}
