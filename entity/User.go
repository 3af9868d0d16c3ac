package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name     string `gorm:"size:60;not null" json:"name"`
	Email    string `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash
	Address  string `gorm:"size:400" json:"address"`
	Role     Role   `gorm:"size:16;not null;default:user;index" json:"role"`

	// Relations — preload เฉพาะตอนจำเป็น
	StoreOwned *Store   `gorm:"foreignKey:OwnerID" json:"-"`
	Ratings    []Rating `json:"-"`
}
