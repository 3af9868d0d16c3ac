package entity

import (
	"gorm.io/gorm"
)

type Store struct {
	gorm.Model
	Name    string `gorm:"size:60;not null;index"`
	Email   string `gorm:"size:191;uniqueIndex;not null"`
	Address string `gorm:"size:400;not null"`

	// one store per owner
	OwnerID *uint `gorm:"uniqueIndex"`
	Owner   *User `gorm:"foreignKey:OwnerID"`

	Ratings []Rating
}
