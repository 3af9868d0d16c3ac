package services

import (
	"context"
	"testing"
	"time"

	"storerating/entity"
	"storerating/pkg/testdb"
	"storerating/repository"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	users   *repository.UserRepository
	stores  *repository.StoreRepository
	ratings *repository.RatingRepository

	auth   *AuthService
	rating *RatingService
	dir    *DirectoryService
	admin  *AdminService
	logs   *test.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.New(t)
	log, hook := test.NewNullLogger()

	f := &fixture{
		db:      db,
		users:   repository.NewUserRepository(db),
		stores:  repository.NewStoreRepository(db),
		ratings: repository.NewRatingRepository(db),
		logs:    hook,
	}
	f.auth = NewAuthService(f.users, "test-secret", time.Hour)
	f.rating = NewRatingService(f.ratings, f.stores)
	f.dir = NewDirectoryService(f.users, f.stores, f.ratings)
	f.admin = NewAdminService(db, f.users, f.stores, f.ratings, log)
	return f
}

// mustUser bypasses validation; the name does not need to satisfy the length rule.
func (f *fixture) mustUser(t *testing.T, name, email string, role entity.Role) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Secret#123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{Name: name, Email: email, Password: string(hash), Address: name + " street", Role: role}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) mustStore(t *testing.T, name, email, address string, owner *entity.User) *entity.Store {
	t.Helper()
	s := &entity.Store{Name: name, Email: email, Address: address}
	if owner != nil {
		s.OwnerID = &owner.ID
	}
	require.NoError(t, f.stores.Create(context.Background(), s))
	return s
}

func (f *fixture) mustRate(t *testing.T, u *entity.User, s *entity.Store, value int) {
	t.Helper()
	_, _, err := f.rating.SubmitOrUpdate(context.Background(), u.ID, s.ID, value)
	require.NoError(t, err)
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func validInput() UserInput {
	return UserInput{
		Name:     "Alexandra Catherine Johnson",
		Email:    "alex@example.com",
		Password: "Passw0rd!",
		Address:  "12 Market Street",
	}
}
