package controllers

import (
	"storerating/entity"
	"storerating/services"

	"github.com/gin-gonic/gin"
)

// แปลง entity เป็น JSON ที่ส่งให้ client (ไม่มี password)

func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"address":   u.Address,
		"role":      u.Role,
		"createdAt": u.CreatedAt,
	}
}

func storeJSON(s *entity.Store) gin.H {
	return gin.H{
		"id":      s.ID,
		"name":    s.Name,
		"email":   s.Email,
		"address": s.Address,
		"ownerId": s.OwnerID,
	}
}

func ratingJSON(r *entity.Rating) gin.H {
	return gin.H{
		"id":        r.ID,
		"userId":    r.UserID,
		"storeId":   r.StoreID,
		"rating":    r.Rating,
		"createdAt": r.CreatedAt,
		"updatedAt": r.UpdatedAt,
	}
}

// averageRating เป็น null เมื่อยังไม่มีคะแนน
func listingJSON(l services.StoreListing, withUserRating bool) gin.H {
	out := gin.H{
		"id":            l.ID,
		"name":          l.Name,
		"email":         l.Email,
		"address":       l.Address,
		"ownerId":       l.OwnerID,
		"overallRating": l.Aggregate.Average,
		"totalRatings":  l.Aggregate.Total,
	}
	if withUserRating {
		out["userRating"] = l.UserRating
	}
	return out
}
