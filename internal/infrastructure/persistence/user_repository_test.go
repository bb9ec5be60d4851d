package persistence

import (
	"context"
	"testing"

	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	"github.com/NapatKulnarong/ReMeals/internal/domain/identity"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, id, username string) *identity.User {
	t.Helper()
	u := &identity.User{UserID: id, Username: username, Fname: "F", Lname: "L", Phone: "0800000000",
		Email: username + "@example.com", PasswordHash: "x"}
	require.NoError(t, NewGormUserRepository(db).Create(context.Background(), u))
	return u
}

func TestGormUserRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	seedUser(t, db, "U1", "alice")

	u, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "U1", u.UserID)

	_, err = repo.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	taken, err := repo.ExistsByUsername(ctx, "alice", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsByEmail(ctx, "alice@example.com", "U1")
	require.NoError(t, err)
	assert.False(t, taken)

	found, err := repo.ExistsByID(ctx, "")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGormRoleRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	roles := NewGormRoleRepository(db)
	seedUser(t, db, "U1", "alice")
	seedUser(t, db, "U2", "bob")

	t.Run("donor restaurants", func(t *testing.T) {
		require.NoError(t, roles.SaveDonor(ctx, &identity.Donor{UserID: "U1", RestaurantID: "R1"}))
		require.NoError(t, roles.SaveDonor(ctx, &identity.Donor{UserID: "U1", RestaurantID: "R2"}))

		ids, err := roles.DonorRestaurantIDs(ctx, "U1")
		require.NoError(t, err)
		assert.Equal(t, []string{"R2"}, ids)
	})

	t.Run("requested communities", func(t *testing.T) {
		community := "C1"
		req := &donation.DonationRequest{Title: "T", RecipientAddress: "A", PeopleCount: 1, CommunityID: &community,
			Status: donation.StatusPending}
		require.NoError(t, NewGormDonationRequestRepository(db).Create(ctx, req))
		own := "C2"
		require.NoError(t, roles.SaveRecipient(ctx, &identity.Recipient{UserID: "U1", CommunityID: &own, DonationRequestID: &req.RequestID}))

		ids, err := roles.RequestedCommunityIDs(ctx, "U1")
		require.NoError(t, err)
		assert.Equal(t, []string{"C1", "C2"}, ids)

		ids, err = roles.RequestedCommunityIDs(ctx, "U2")
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("delivery staff", func(t *testing.T) {
		require.NoError(t, roles.SaveDeliveryStaff(ctx, &identity.DeliveryStaff{UserID: "U1", AssignedArea: "North", IsAvailable: true}))
		require.NoError(t, roles.SaveDeliveryStaff(ctx, &identity.DeliveryStaff{UserID: "U2", AssignedArea: "South", IsAvailable: false}))

		all, err := roles.ListDeliveryStaff(ctx, false)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		available, err := roles.ListDeliveryStaff(ctx, true)
		require.NoError(t, err)
		require.Len(t, available, 1)
		assert.Equal(t, "alice", available[0].Username)
		assert.Equal(t, "North", available[0].AssignedArea)
	})

	t.Run("admin is idempotent", func(t *testing.T) {
		require.NoError(t, roles.SaveAdmin(ctx, &identity.Admin{UserID: "U1"}))
		require.NoError(t, roles.SaveAdmin(ctx, &identity.Admin{UserID: "U1"}))
	})
}
