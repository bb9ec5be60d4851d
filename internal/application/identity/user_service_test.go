package identity

import (
	"context"
	"testing"

	"github.com/NapatKulnarong/ReMeals/internal/domain/identity"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Profile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "U1", "alice", "secret")
	svc := env.userService()

	_, err := svc.Profile(ctx, shared.Actor{})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.Equal(t, "Authentication credentials were not provided.", err.Error())

	_, err = svc.Profile(ctx, shared.Actor{UserID: "GHOST"})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	resp, err := svc.Profile(ctx, shared.Actor{UserID: "U1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Nil(t, resp.Bod)
}

func TestUserService_UpdateProfile_Partial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "U1", "alice", "secret")
	svc := env.userService()
	actor := shared.Actor{UserID: "U1"}

	resp, err := svc.UpdateProfile(ctx, actor, ProfileRequest{Fname: ref("Alicia"), Bod: ref("31/12/1999")}, true)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", resp.Fname)
	assert.Equal(t, "alice", resp.Username)
	require.NotNil(t, resp.Bod)
	assert.Equal(t, "1999-12-31", resp.Bod.String())

	stored, err := env.users.FindByID(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", stored.Fname)
}

func TestUserService_UpdateProfile_Password(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "U1", "alice", "secret")

	_, err := env.userService().UpdateProfile(ctx, shared.Actor{UserID: "U1"}, ProfileRequest{Password: ref("n3w")}, true)
	require.NoError(t, err)

	_, err = env.authService().Login(ctx, LoginRequest{Identifier: "alice", Password: "n3w"})
	assert.NoError(t, err)
}

func TestUserService_UpdateProfile_Uniqueness(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "U1", "alice", "secret")
	env.register(t, "U2", "bob", "secret")
	svc := env.userService()
	actor := shared.Actor{UserID: "U1"}

	_, err := svc.UpdateProfile(ctx, actor, ProfileRequest{Username: ref("bob")}, true)
	require.Error(t, err)
	assert.Equal(t, "Username already exists", err.Error())

	_, err = svc.UpdateProfile(ctx, actor, ProfileRequest{Email: ref("bob@example.com")}, true)
	require.Error(t, err)
	assert.Equal(t, "Email already exists", err.Error())

	// keeping your own values is not a conflict
	_, err = svc.UpdateProfile(ctx, actor, ProfileRequest{Username: ref("alice"), Email: ref("alice@example.com")}, true)
	assert.NoError(t, err)
}

func TestUserService_UpdateProfile_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "U1", "alice", "secret")
	svc := env.userService()
	actor := shared.Actor{UserID: "U1"}

	_, err := svc.UpdateProfile(ctx, shared.Actor{}, ProfileRequest{Fname: ref("X")}, true)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = svc.UpdateProfile(ctx, actor, ProfileRequest{}, true)
	require.Error(t, err)
	assert.Equal(t, "No updatable fields provided.", err.Error())

	_, err = svc.UpdateProfile(ctx, actor, ProfileRequest{Fname: ref("X")}, false)
	require.Error(t, err)
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	fields := []string{}
	for _, d := range de.Details {
		fields = append(fields, d.Field)
	}
	assert.Equal(t, []string{"username", "lname", "phone", "email"}, fields)

	_, err = svc.UpdateProfile(ctx, actor, ProfileRequest{Bod: ref("yesterday")}, true)
	require.Error(t, err)
	assert.Equal(t, "Invalid bod format", err.Error())
}

func TestUserService_ListDeliveryStaff(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "D1", "zed", "secret")
	env.register(t, "D2", "amy", "secret")
	require.NoError(t, env.roles.SaveDeliveryStaff(ctx, &identity.DeliveryStaff{UserID: "D1", AssignedArea: "North", IsAvailable: true}))
	require.NoError(t, env.roles.SaveDeliveryStaff(ctx, &identity.DeliveryStaff{UserID: "D2", AssignedArea: "South", IsAvailable: false}))
	svc := env.userService()

	all, err := svc.ListDeliveryStaff(ctx, StaffListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "amy", all[0].Username)
	assert.False(t, all[0].IsAvailable)
	assert.Equal(t, "zed", all[1].Username)
	assert.Equal(t, "North", all[1].AssignedArea)

	available, err := svc.ListDeliveryStaff(ctx, StaffListFilter{Available: "yes"})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "D1", available[0].UserID)
}
