package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/NapatKulnarong/ReMeals/internal/domain/logistics"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedDelivery(t *testing.T, db *gorm.DB, d logistics.Delivery) *logistics.Delivery {
	t.Helper()
	d.PickupTime, d.DropoffTime = time.Now(), time.Now().Add(time.Hour)
	if d.Status == "" {
		d.Status = logistics.StatusPending
	}
	if d.DeliveryType == logistics.TypeDistribution {
		d.PickupLocationType, d.DropoffLocationType = logistics.LocationWarehouse, logistics.LocationCommunity
	} else {
		d.PickupLocationType, d.DropoffLocationType = logistics.LocationRestaurant, logistics.LocationWarehouse
	}
	require.NoError(t, NewGormDeliveryRepository(db).Create(context.Background(), &d))
	return &d
}

func strRef(s string) *string { return &s }

func TestGormDeliveryRepository_Scope(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormDeliveryRepository(db)
	seedRestaurant(t, db, "R1")
	seedRestaurant(t, db, "R2")
	d1 := seedDonation(t, db, "R1")
	d2 := seedDonation(t, db, "R2")

	pickup1 := seedDelivery(t, db, logistics.Delivery{DeliveryType: logistics.TypeDonation, DonationID: &d1.DonationID, UserID: strRef("DRV1")})
	seedDelivery(t, db, logistics.Delivery{DeliveryType: logistics.TypeDonation, DonationID: &d2.DonationID, UserID: strRef("DRV2")})
	drop := seedDelivery(t, db, logistics.Delivery{DeliveryType: logistics.TypeDistribution, CommunityID: strRef("C1"), UserID: strRef("DRV1")})

	assert.Equal(t, "DLV0000001", pickup1.DeliveryID)

	list := func(filter logistics.DeliveryFilter) []string {
		rows, err := repo.FindAll(ctx, filter, shared.DefaultFilter())
		require.NoError(t, err)
		ids := []string{}
		for _, r := range rows {
			ids = append(ids, r.DeliveryID)
		}
		return ids
	}

	assert.Len(t, list(logistics.DeliveryFilter{Scope: logistics.Scope{All: true}}), 3)
	assert.Empty(t, list(logistics.DeliveryFilter{Scope: logistics.Scope{None: true}}))
	assert.Equal(t, []string{pickup1.DeliveryID, drop.DeliveryID},
		list(logistics.DeliveryFilter{Scope: logistics.Scope{AssignedTo: "DRV1"}}))
	assert.Equal(t, []string{pickup1.DeliveryID},
		list(logistics.DeliveryFilter{Scope: logistics.Scope{DonorRestaurantIDs: []string{"R1"}}}))
	assert.Equal(t, []string{pickup1.DeliveryID, drop.DeliveryID},
		list(logistics.DeliveryFilter{Scope: logistics.Scope{DonorRestaurantIDs: []string{"R1"}, CommunityIDs: []string{"C1"}}}))
	assert.Equal(t, []string{drop.DeliveryID},
		list(logistics.DeliveryFilter{DeliveryType: string(logistics.TypeDistribution), Scope: logistics.Scope{All: true}}))

	count, err := repo.Count(ctx, logistics.DeliveryFilter{Scope: logistics.Scope{CommunityIDs: []string{"C1"}}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormDeliveryRepository_Queries(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormDeliveryRepository(db)

	seedDelivery(t, db, logistics.Delivery{DeliveryType: logistics.TypeDonation, WarehouseID: strRef("WH1"), Status: logistics.StatusDelivered})
	seedDelivery(t, db, logistics.Delivery{DeliveryType: logistics.TypeDonation, WarehouseID: strRef("WH1")})
	seedDelivery(t, db, logistics.Delivery{DeliveryType: logistics.TypeDistribution, CommunityID: strRef("C1"), Status: logistics.StatusInTransit})

	delivered, err := repo.FindDeliveredToWarehouse(ctx, "WH1")
	require.NoError(t, err)
	assert.Len(t, delivered, 1)

	active, err := repo.ExistsActiveForCommunity(ctx, "C1")
	require.NoError(t, err)
	assert.True(t, active)

	active, err = repo.ExistsActiveForCommunity(ctx, "C2")
	require.NoError(t, err)
	assert.False(t, active)

	require.NoError(t, repo.Delete(ctx, "DLV0000002"))
	assert.ErrorIs(t, repo.Delete(ctx, "DLV0000002"), shared.ErrNotFound)
}
