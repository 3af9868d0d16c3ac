package controllers

import (
	"strings"

	"storerating/pkg/resp"
	"storerating/repository"
	"storerating/services"
	"storerating/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type StoreOwnerController struct {
	Ratings *services.RatingService
	Log     logrus.FieldLogger
}

func NewStoreOwnerController(ratings *services.RatingService, log logrus.FieldLogger) *StoreOwnerController {
	return &StoreOwnerController{Ratings: ratings, Log: log}
}

// GET /api/store-owner/dashboard?sortOrder=asc|desc
// ยังไม่มีร้าน = ตอบ 200 พร้อม store: null
func (oc *StoreOwnerController) Dashboard(c *gin.Context) {
	order := repository.Descending
	if strings.EqualFold(c.Query("sortOrder"), "asc") {
		order = repository.Ascending
	}

	d, err := oc.Ratings.OwnerDashboard(c.Request.Context(), utils.CurrentUserID(c), order)
	if err != nil {
		resp.Error(c, oc.Log, err)
		return
	}

	users := make([]gin.H, 0, len(d.Reviewers))
	for _, r := range d.Reviewers {
		users = append(users, gin.H{
			"id":         r.UserID,
			"name":       r.Name,
			"email":      r.Email,
			"rating":     r.Rating,
			"created_at": r.CreatedAt,
		})
	}

	var store gin.H
	if d.HasStore() {
		store = storeJSON(d.Store)
	}
	resp.OK(c, gin.H{
		"hasStore":      d.HasStore(),
		"store":         store,
		"averageRating": d.Aggregate.Average,
		"totalRatings":  d.Aggregate.Total,
		"ratingUsers":   users,
	})
}
