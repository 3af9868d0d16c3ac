package controllers

import (
	"net/http"

	"storerating/pkg/resp"
	"storerating/services"
	"storerating/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type StoreController struct {
	Ratings   *services.RatingService
	Directory *services.DirectoryService
	Log       logrus.FieldLogger
}

func NewStoreController(ratings *services.RatingService, dir *services.DirectoryService, log logrus.FieldLogger) *StoreController {
	return &StoreController{Ratings: ratings, Directory: dir, Log: log}
}

// GET /api/stores?name=&address=&sortBy=&sortOrder=
// แนบคะแนนของผู้เรียกเองใน userRating
func (sc *StoreController) List(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	stores, err := sc.Directory.ListStores(c.Request.Context(), services.StoreFilter{
		Name:    c.Query("name"),
		Address: c.Query("address"),
	}, services.ParseStoreSort(services.UserStoreView, c.Query("sortBy"), c.Query("sortOrder")), &uid)
	if err != nil {
		resp.Error(c, sc.Log, err)
		return
	}

	items := make([]gin.H, 0, len(stores))
	for _, s := range stores {
		items = append(items, listingJSON(s, true))
	}
	resp.OK(c, gin.H{"stores": items})
}

type SubmitRatingReq struct {
	StoreID uint `json:"storeId" binding:"required"`
	Rating  int  `json:"rating" binding:"required,min=1,max=5"`
}

// POST /api/stores/rating
// ส่งซ้ำร้านเดิม = แก้คะแนนเดิม (created_at คงเดิม)
func (sc *StoreController) SubmitRating(c *gin.Context) {
	var req SubmitRatingReq
	if !bindJSON(c, sc.Log, &req) {
		return
	}

	rating, result, err := sc.Ratings.SubmitOrUpdate(c.Request.Context(), utils.CurrentUserID(c), req.StoreID, req.Rating)
	if err != nil {
		resp.Error(c, sc.Log, err)
		return
	}

	body := gin.H{"result": result, "rating": ratingJSON(rating)}
	if result == services.RatingCreated {
		body["message"] = "Rating submitted successfully"
		resp.Created(c, body)
		return
	}
	body["message"] = "Rating updated successfully"
	resp.OK(c, body)
}

// GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Store Rating API is running!"})
}
