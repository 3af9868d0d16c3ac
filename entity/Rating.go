package entity

import (
	"time"
)

// Rating คะแนน 1–5 ที่ผู้ใช้ให้ร้าน (หนึ่งแถวต่อหนึ่งคู่ user/store)
type Rating struct {
	ID     uint `gorm:"primarykey"`
	Rating int  `gorm:"not null;check:chk_ratings_range,rating >= 1 AND rating <= 5"`

	UserID  uint `gorm:"not null;uniqueIndex:idx_ratings_user_store,priority:1"`
	User    User
	StoreID uint `gorm:"not null;uniqueIndex:idx_ratings_user_store,priority:2;index"`
	Store   Store

	CreatedAt time.Time
	UpdatedAt time.Time
}
