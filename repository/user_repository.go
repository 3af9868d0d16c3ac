package repository

import (
	"context"

	"storerating/entity"

	"gorm.io/gorm"
)

// UserRepository รับผิดชอบการคุยกับตาราง users ใน DB เท่านั้น
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// WithTx ใช้ภายใน transaction
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{DB: tx}
}

// หาผู้ใช้จาก email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// นับจำนวน user ที่มี email ซ้ำ
func (r *UserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// สร้าง user ใหม่
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

// โหลด user ตาม ID
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint, hash string) error {
	return r.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).
		Update("password", hash).Error
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID uint, role entity.Role) error {
	return r.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).
		Update("role", role).Error
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.User{}).Count(&n).Error
	return n, err
}

type UserQuery struct {
	Name    string
	Email   string
	Address string
	Role    entity.Role
	Sort    UserSort
}

// List รายชื่อ user ตาม filter (ไม่ดึง password)
func (r *UserRepository) List(ctx context.Context, q UserQuery) ([]entity.User, error) {
	tx := r.DB.WithContext(ctx).Model(&entity.User{}).
		Select("users.id", "users.name", "users.email", "users.address", "users.role", "users.created_at", "users.updated_at")

	if q.Name != "" {
		tx = tx.Where(likeClause("users.name"), containsPattern(q.Name))
	}
	if q.Email != "" {
		tx = tx.Where(likeClause("users.email"), containsPattern(q.Email))
	}
	if q.Address != "" {
		tx = tx.Where(likeClause("users.address"), containsPattern(q.Address))
	}
	if q.Role != "" {
		tx = tx.Where("users.role = ?", q.Role)
	}

	var users []entity.User
	err := tx.Order(orderBy(q.Sort.Field.column(), q.Sort.Order)).
		Order("users.id").
		Find(&users).Error
	return users, err
}
