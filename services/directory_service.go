package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storerating/entity"
	"storerating/repository"

	"gorm.io/gorm"
)

// DirectoryService ค้นหา/เรียงรายการร้านและผู้ใช้
type DirectoryService struct {
	users   *repository.UserRepository
	stores  *repository.StoreRepository
	ratings *repository.RatingRepository
}

func NewDirectoryService(users *repository.UserRepository, stores *repository.StoreRepository, ratings *repository.RatingRepository) *DirectoryService {
	return &DirectoryService{users: users, stores: stores, ratings: ratings}
}

type StoreFilter struct {
	Name    string
	Email   string
	Address string
}

type StoreListing struct {
	ID        uint
	Name      string
	Email     string
	Address   string
	OwnerID   *uint
	Aggregate Aggregate
	// คะแนนของผู้เรียกเอง (nil = ยังไม่เคยให้ หรือไม่ได้ขอ)
	UserRating *int
}

// ListStores viewerID != nil จะแนบคะแนนของ viewer มาด้วย
func (s *DirectoryService) ListStores(ctx context.Context, f StoreFilter, sort repository.StoreSort, viewerID *uint) ([]StoreListing, error) {
	rows, err := s.stores.ListWithAggregate(ctx, repository.StoreQuery{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Address:  strings.TrimSpace(f.Address),
		ViewerID: viewerID,
		Sort:     sort,
	})
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	out := make([]StoreListing, 0, len(rows))
	for _, r := range rows {
		out = append(out, StoreListing{
			ID:         r.ID,
			Name:       r.Name,
			Email:      r.Email,
			Address:    r.Address,
			OwnerID:    r.OwnerID,
			Aggregate:  newAggregate(r.AverageRating, r.TotalRatings),
			UserRating: r.UserRating,
		})
	}
	return out, nil
}

type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    string
}

func (s *DirectoryService) ListUsers(ctx context.Context, f UserFilter, sort repository.UserSort) ([]entity.User, error) {
	users, err := s.users.List(ctx, repository.UserQuery{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Address: strings.TrimSpace(f.Address),
		Role:    entity.Role(strings.TrimSpace(f.Role)),
		Sort:    sort,
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []entity.User{}
	}
	return users, nil
}

// UserDetail ถ้าเป็น store_owner ที่มีร้าน จะมี StoreID และ Aggregate
type UserDetail struct {
	User      *entity.User
	StoreID   *uint
	Aggregate *Aggregate
}

func (s *DirectoryService) UserDetail(ctx context.Context, userID uint) (*UserDetail, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("User")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	detail := &UserDetail{User: user}
	if user.Role != entity.RoleStoreOwner {
		return detail, nil
	}

	store, err := s.stores.FindByOwner(ctx, user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return detail, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find owner store: %w", err)
	}
	agg, err := storeAggregate(ctx, s.ratings, store.ID)
	if err != nil {
		return nil, err
	}
	detail.StoreID = &store.ID
	detail.Aggregate = &agg
	return detail, nil
}
