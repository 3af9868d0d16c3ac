// repository/store_repository.go
package repository

import (
	"context"

	"storerating/entity"

	"gorm.io/gorm"
)

type StoreRepository struct {
	DB *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{DB: db}
}

func (r *StoreRepository) WithTx(tx *gorm.DB) *StoreRepository {
	return &StoreRepository{DB: tx}
}

func (r *StoreRepository) Create(ctx context.Context, store *entity.Store) error {
	return r.DB.WithContext(ctx).Omit("Owner", "Ratings").Create(store).Error
}

// ดึงร้านตาม ID
func (r *StoreRepository) FindByID(ctx context.Context, id uint) (*entity.Store, error) {
	var store entity.Store
	if err := r.DB.WithContext(ctx).First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// ร้านของเจ้าของ (มีได้ไม่เกิน 1)
func (r *StoreRepository) FindByOwner(ctx context.Context, ownerID uint) (*entity.Store, error) {
	var store entity.Store
	if err := r.DB.WithContext(ctx).Where("owner_id = ?", ownerID).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *StoreRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Store{}).Where("email = ?", email).Count(&n).Error
	return n, err
}

func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Store{}).Count(&n).Error
	return n, err
}

type StoreQuery struct {
	Name    string
	Email   string
	Address string
	// ถ้ามี จะแนบคะแนนที่ viewer เคยให้ร้านนั้น
	ViewerID *uint
	Sort     StoreSort
}

// StoreRow ร้าน + ค่าเฉลี่ยดิบจาก AVG() (ยังไม่ปัดเศษ)
type StoreRow struct {
	ID            uint
	Name          string
	Email         string
	Address       string
	OwnerID       *uint
	AverageRating *float64
	TotalRatings  int64
	UserRating    *int
}

// ListWithAggregate รายการร้านพร้อมค่าเฉลี่ยคะแนน
func (r *StoreRepository) ListWithAggregate(ctx context.Context, q StoreQuery) ([]StoreRow, error) {
	tx := r.DB.WithContext(ctx).Model(&entity.Store{}).
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id")

	const cols = "stores.id, stores.name, stores.email, stores.address, stores.owner_id, " +
		"AVG(ratings.rating) AS average_rating, COUNT(ratings.id) AS total_ratings"
	if q.ViewerID != nil {
		tx = tx.Select(cols+", (SELECT ur.rating FROM ratings ur WHERE ur.store_id = stores.id AND ur.user_id = ?) AS user_rating", *q.ViewerID)
	} else {
		tx = tx.Select(cols)
	}

	if q.Name != "" {
		tx = tx.Where(likeClause("stores.name"), containsPattern(q.Name))
	}
	if q.Email != "" {
		tx = tx.Where(likeClause("stores.email"), containsPattern(q.Email))
	}
	if q.Address != "" {
		tx = tx.Where(likeClause("stores.address"), containsPattern(q.Address))
	}

	var rows []StoreRow
	err := tx.Group("stores.id, stores.name, stores.email, stores.address, stores.owner_id").
		Order(orderBy(q.Sort.Field.column(), q.Sort.Order)).
		Order("stores.id").
		Scan(&rows).Error
	return rows, err
}
