package repository

import (
	"context"
	"time"

	"storerating/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

// Upsert เขียนคะแนนของคู่ (user, store) ด้วย statement เดียว
// created = true ถ้าก่อนหน้านี้ยังไม่มีแถวของคู่นี้
// created_at ของแถวเดิมไม่ถูกแตะ
func (r *RatingRepository) Upsert(ctx context.Context, userID, storeID uint, value int) (*entity.Rating, bool, error) {
	var (
		saved   entity.Rating
		created bool
	)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entity.Rating{}).
			Where("user_id = ? AND store_id = ?", userID, storeID).
			Count(&n).Error; err != nil {
			return err
		}
		created = n == 0

		now := time.Now()
		row := entity.Rating{
			UserID:    userID,
			StoreID:   storeID,
			Rating:    value,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ? AND store_id = ?", userID, storeID).First(&saved).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &saved, created, nil
}

func (r *RatingRepository) CountByUserStore(ctx context.Context, userID, storeID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Rating{}).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Count(&n).Error
	return n, err
}

func (r *RatingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Rating{}).Count(&n).Error
	return n, err
}

// AggregateRow ผลจาก AVG/COUNT ของร้านเดียว
type AggregateRow struct {
	Average *float64
	Total   int64
}

func (r *RatingRepository) AggregateForStore(ctx context.Context, storeID uint) (AggregateRow, error) {
	var a AggregateRow
	err := r.DB.WithContext(ctx).Model(&entity.Rating{}).
		Select("AVG(rating) AS average, COUNT(*) AS total").
		Where("store_id = ?", storeID).
		Scan(&a).Error
	return a, err
}

// ReviewerRow ผู้ให้คะแนนร้าน
type ReviewerRow struct {
	UserID    uint
	Name      string
	Email     string
	Rating    int
	CreatedAt time.Time
}

func (r *RatingRepository) Reviewers(ctx context.Context, storeID uint, order SortOrder) ([]ReviewerRow, error) {
	var rows []ReviewerRow
	err := r.DB.WithContext(ctx).Model(&entity.Rating{}).
		Select("users.id AS user_id, users.name, users.email, ratings.rating, ratings.created_at").
		Joins("JOIN users ON users.id = ratings.user_id AND users.deleted_at IS NULL").
		Where("ratings.store_id = ?", storeID).
		Order(orderBy("ratings.created_at", order)).
		Order(orderBy("ratings.id", order)).
		Scan(&rows).Error
	return rows, err
}
