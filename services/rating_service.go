package services

import (
	"context"
	"errors"
	"fmt"

	"storerating/entity"
	"storerating/pkg/metrics"
	"storerating/repository"

	"gorm.io/gorm"
)

type UpsertResult string

const (
	RatingCreated UpsertResult = "created"
	RatingUpdated UpsertResult = "updated"
)

// RatingService ให้คะแนนร้าน + สรุปค่าเฉลี่ย
type RatingService struct {
	ratings *repository.RatingRepository
	stores  *repository.StoreRepository
}

func NewRatingService(ratings *repository.RatingRepository, stores *repository.StoreRepository) *RatingService {
	return &RatingService{ratings: ratings, stores: stores}
}

// SubmitOrUpdate หนึ่ง user ให้คะแนนร้านหนึ่งได้แถวเดียว ส่งซ้ำ = แก้ค่าเดิม
func (s *RatingService) SubmitOrUpdate(ctx context.Context, userID, storeID uint, value int) (*entity.Rating, UpsertResult, error) {
	if err := validateVar("rating", value, "min=1,max=5"); err != nil {
		return nil, "", err
	}
	if storeID == 0 {
		return nil, "", invalid("storeId", "storeId is required")
	}
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", notFound("Store")
		}
		return nil, "", fmt.Errorf("find store: %w", err)
	}

	rating, created, err := s.ratings.Upsert(ctx, userID, storeID, value)
	if err != nil {
		return nil, "", fmt.Errorf("upsert rating: %w", err)
	}

	result := RatingUpdated
	if created {
		result = RatingCreated
	}
	metrics.RecordRating(string(result))
	return rating, result, nil
}

// StoreAggregate ค่าเฉลี่ยของร้านเดียว
func (s *RatingService) StoreAggregate(ctx context.Context, storeID uint) (Aggregate, error) {
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Aggregate{}, notFound("Store")
		}
		return Aggregate{}, err
	}
	return storeAggregate(ctx, s.ratings, storeID)
}

// OwnerDashboard ข้อมูลร้านของ owner; Store == nil คือยังไม่ได้รับมอบร้าน
type OwnerDashboard struct {
	Store     *entity.Store
	Aggregate Aggregate
	Reviewers []repository.ReviewerRow
}

func (d *OwnerDashboard) HasStore() bool { return d.Store != nil }

func (s *RatingService) OwnerDashboard(ctx context.Context, ownerID uint, order repository.SortOrder) (*OwnerDashboard, error) {
	store, err := s.stores.FindByOwner(ctx, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &OwnerDashboard{Reviewers: []repository.ReviewerRow{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find owner store: %w", err)
	}

	agg, err := storeAggregate(ctx, s.ratings, store.ID)
	if err != nil {
		return nil, err
	}
	reviewers, err := s.ratings.Reviewers(ctx, store.ID, order)
	if err != nil {
		return nil, fmt.Errorf("list reviewers: %w", err)
	}
	if reviewers == nil {
		reviewers = []repository.ReviewerRow{}
	}

	return &OwnerDashboard{
		Store:     store,
		Aggregate: agg,
		Reviewers: reviewers,
	}, nil
}
