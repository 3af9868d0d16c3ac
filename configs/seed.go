package configs

import (
	"fmt"
	"strings"

	"storerating/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin สร้าง admin ครั้งแรก
func SeedAdmin(db *gorm.DB, cfg *Config, log logrus.FieldLogger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		log.Warn("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if count > 0 {
		log.WithField("email", email).Info("admin already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	admin := entity.User{
		Name:     cfg.AdminName,
		Email:    email,
		Password: string(hash),
		Role:     entity.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	log.WithField("email", email).Info("admin seeded")
	return nil
}
