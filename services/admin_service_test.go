package services

import (
	"context"
	"testing"

	"storerating/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStore() StoreInput {
	return StoreInput{Name: "Corner Grocery", Email: "grocery@example.com", Address: "1 Corner Road"}
}

func TestAdminService_Stats(t *testing.T) {
	f := newFixture(t)
	u := f.mustUser(t, "Rater One", "r1@example.com", entity.RoleUser)
	s1 := f.mustStore(t, "One", "one@example.com", "1 Road", nil)
	s2 := f.mustStore(t, "Two", "two@example.com", "2 Road", nil)
	f.mustRate(t, u, s1, 4)
	f.mustRate(t, u, s2, 1)
	f.mustRate(t, u, s2, 2)

	st, err := f.admin.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{TotalUsers: 1, TotalStores: 2, TotalRatings: 2}, st)
}

func TestAdminService_CreateUserRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.admin.CreateUser(ctx, validInput(), "")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)

	in := validInput()
	in.Email = "second@example.com"
	u, err = f.admin.CreateUser(ctx, in, "admin")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)

	in.Email = "third@example.com"
	_, err = f.admin.CreateUser(ctx, in, "superuser")
	assert.Contains(t, fieldsOf(t, err), "role")

	_, err = f.admin.CreateUser(ctx, validInput(), "user")
	assert.ErrorIs(t, err, ErrConflict)

	entry := f.logs.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "user created by admin", entry.Message)
	assert.Equal(t, entity.RoleAdmin, entry.Data["role"])
}

func TestAdminService_CreateStoreWithoutOwner(t *testing.T) {
	f := newFixture(t)
	s, err := f.admin.CreateStore(context.Background(), StoreInput{
		Name:    "  Corner Grocery ",
		Email:   "Grocery@Example.com",
		Address: "1 Corner Road",
	})
	require.NoError(t, err)
	assert.Equal(t, "Corner Grocery", s.Name)
	assert.Equal(t, "grocery@example.com", s.Email)
	assert.Nil(t, s.OwnerID)
}

func TestAdminService_CreateStorePromotesOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.mustUser(t, "Future Owner", "owner@example.com", entity.RoleUser)

	in := validStore()
	in.OwnerEmail = "OWNER@example.com"
	s, err := f.admin.CreateStore(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, s.OwnerID)
	assert.Equal(t, u.ID, *s.OwnerID)

	reloaded, err := f.users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStoreOwner, reloaded.Role)

	entry := f.logs.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "store created", entry.Message)
	assert.Equal(t, u.ID, entry.Data["promotedUserId"])
}

func TestAdminService_CreateStoreExistingOwnerRoleNotLogged(t *testing.T) {
	f := newFixture(t)
	f.mustUser(t, "Existing Owner", "owner@example.com", entity.RoleStoreOwner)

	in := validStore()
	in.OwnerEmail = "owner@example.com"
	_, err := f.admin.CreateStore(context.Background(), in)
	require.NoError(t, err)

	entry := f.logs.LastEntry()
	require.NotNil(t, entry)
	assert.NotContains(t, entry.Data, "promotedUserId")
}

func TestAdminService_CreateStoreRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown owner creates nothing", func(t *testing.T) {
		f := newFixture(t)
		in := validStore()
		in.OwnerEmail = "ghost@example.com"
		_, err := f.admin.CreateStore(ctx, in)
		assert.Contains(t, fieldsOf(t, err), "ownerEmail")

		n, err := f.stores.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("admin cannot own a store", func(t *testing.T) {
		f := newFixture(t)
		admin := f.mustUser(t, "Site Admin", "admin@example.com", entity.RoleAdmin)
		in := validStore()
		in.OwnerEmail = admin.Email
		_, err := f.admin.CreateStore(ctx, in)
		assert.Contains(t, fieldsOf(t, err), "ownerEmail")

		reloaded, err := f.users.FindByID(ctx, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.RoleAdmin, reloaded.Role)
	})

	t.Run("owner already has a store", func(t *testing.T) {
		f := newFixture(t)
		owner := f.mustUser(t, "Busy Owner", "busy@example.com", entity.RoleStoreOwner)
		f.mustStore(t, "First", "first@example.com", "1 Road", owner)

		in := validStore()
		in.OwnerEmail = owner.Email
		_, err := f.admin.CreateStore(ctx, in)
		assert.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, "Owner already has a store", PublicMessage(err))
	})

	t.Run("duplicate store email", func(t *testing.T) {
		f := newFixture(t)
		f.mustStore(t, "Original", "grocery@example.com", "1 Road", nil)
		_, err := f.admin.CreateStore(ctx, validStore())
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("field validation", func(t *testing.T) {
		f := newFixture(t)
		fields := fieldsOf(t, func() error {
			_, err := f.admin.CreateStore(ctx, StoreInput{Email: "nope", OwnerEmail: "also-nope"})
			return err
		}())
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "address")
		assert.Contains(t, fields, "ownerEmail")
	})
}
