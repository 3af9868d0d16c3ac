package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storerating/entity"
	"storerating/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AdminService struct {
	db      *gorm.DB
	users   *repository.UserRepository
	stores  *repository.StoreRepository
	ratings *repository.RatingRepository
	log     logrus.FieldLogger
}

func NewAdminService(db *gorm.DB, users *repository.UserRepository, stores *repository.StoreRepository, ratings *repository.RatingRepository, log logrus.FieldLogger) *AdminService {
	return &AdminService{db: db, users: users, stores: stores, ratings: ratings, log: log}
}

type DashboardStats struct {
	TotalUsers   int64
	TotalStores  int64
	TotalRatings int64
}

// Stats ตัวเลขรวม ๆ
func (s *AdminService) Stats(ctx context.Context) (DashboardStats, error) {
	var st DashboardStats
	var err error
	if st.TotalUsers, err = s.users.Count(ctx); err != nil {
		return st, fmt.Errorf("count users: %w", err)
	}
	if st.TotalStores, err = s.stores.Count(ctx); err != nil {
		return st, fmt.Errorf("count stores: %w", err)
	}
	if st.TotalRatings, err = s.ratings.Count(ctx); err != nil {
		return st, fmt.Errorf("count ratings: %w", err)
	}
	return st, nil
}

// CreateUser role ว่าง = user
func (s *AdminService) CreateUser(ctx context.Context, in UserInput, role string) (*entity.User, error) {
	r := entity.Role(strings.TrimSpace(role))
	if r == "" {
		r = entity.RoleUser
	}
	if !r.Valid() {
		return nil, invalid("role", msgRole)
	}
	user, err := createUser(ctx, s.users, in, r)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"userId": user.ID, "role": user.Role}).Info("user created by admin")
	return user, nil
}

type StoreInput struct {
	Name       string `json:"name" validate:"required,max=60"`
	Email      string `json:"email" validate:"required,loose_email"`
	Address    string `json:"address" validate:"required,max=400"`
	OwnerEmail string `json:"ownerEmail" validate:"omitempty,loose_email"`
}

func (in *StoreInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	in.OwnerEmail = normalizeEmail(in.OwnerEmail)
}

// CreateStore ถ้ามี ownerEmail จะเลื่อน user นั้นเป็น store_owner
// promote + insert อยู่ใน transaction เดียว
func (s *AdminService) CreateStore(ctx context.Context, in StoreInput) (*entity.Store, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	store := &entity.Store{Name: in.Name, Email: in.Email, Address: in.Address}
	var promoted *entity.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		stores := s.stores.WithTx(tx)

		n, err := stores.CountByEmail(ctx, in.Email)
		if err != nil {
			return fmt.Errorf("check store email: %w", err)
		}
		if n > 0 {
			return conflict("Store already exists with this email")
		}

		if in.OwnerEmail != "" {
			owner, err := users.FindByEmail(ctx, in.OwnerEmail)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalid("ownerEmail", "Owner with this email not found")
			}
			if err != nil {
				return fmt.Errorf("find owner: %w", err)
			}
			if owner.Role == entity.RoleAdmin {
				return invalid("ownerEmail", "An admin cannot be assigned as store owner")
			}

			_, err = stores.FindByOwner(ctx, owner.ID)
			if err == nil {
				return conflict("Owner already has a store")
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("find owner store: %w", err)
			}

			if owner.Role != entity.RoleStoreOwner {
				if err := users.UpdateRole(ctx, owner.ID, entity.RoleStoreOwner); err != nil {
					return fmt.Errorf("promote owner: %w", err)
				}
				promoted = owner
			}
			store.OwnerID = &owner.ID
		}

		if err := stores.Create(ctx, store); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("Store email or owner already taken")
			}
			return fmt.Errorf("create store: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{"storeId": store.ID}
	if promoted != nil {
		fields["promotedUserId"] = promoted.ID
	}
	s.log.WithFields(fields).Info("store created")
	return store, nil
}
