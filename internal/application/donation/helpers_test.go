package donation

import (
	"context"
	"sync"
	"testing"

	"github.com/NapatKulnarong/ReMeals/internal/application/shared"
	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	"github.com/NapatKulnarong/ReMeals/internal/domain/identity"
	"github.com/NapatKulnarong/ReMeals/internal/domain/partner"
	domainshared "github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/config"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testToday = domainshared.MustParseDate("2025-06-10")

type testEnv struct {
	db      *gorm.DB
	repos   shared.Repositories
	txScope shared.TransactionScope
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}, nil)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate())
	t.Cleanup(func() { _ = database.Close() })
	return &testEnv{
		db:      database.DB,
		repos:   persistence.NewRepositories(database.DB),
		txScope: persistence.NewGormTransactionScope(database.DB),
	}
}

func (e *testEnv) seed(t *testing.T, values ...any) {
	t.Helper()
	for _, v := range values {
		require.NoError(t, e.db.Create(v).Error)
	}
}

func testUser(id, username string) *identity.User {
	return &identity.User{UserID: id, Username: username, Fname: "F", Lname: "L", Phone: "0812345678",
		Email: username + "@example.com", PasswordHash: "x"}
}

func testRestaurant(id string, chainID *string) *partner.Restaurant {
	return &partner.Restaurant{RestaurantID: id, Name: "Kitchen " + id, Address: "1 Main St", RestaurantChainID: chainID}
}

func testWarehouse(id string) *partner.Warehouse {
	return &partner.Warehouse{WarehouseID: id, Address: "Dock", Capacity: 100,
		StoredDate: testToday, ExpDate: testToday.AddDays(30)}
}

func testFood(id, donationID string, qty int) *donation.FoodItem {
	return &donation.FoodItem{FoodID: id, Name: "Rice", Quantity: qty, Unit: "kg",
		ExpireDate: testToday.AddDays(10), DonationID: donationID}
}

func ref(s string) *string { return &s }

// memorySummaryCache records cache traffic for assertions
type memorySummaryCache struct {
	mu            sync.Mutex
	summary       *donation.ImpactSummary
	sets          int
	invalidations int
}

func (c *memorySummaryCache) Get(context.Context) (*donation.ImpactSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary, nil
}

func (c *memorySummaryCache) Set(_ context.Context, s *donation.ImpactSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary = s
	c.sets++
	return nil
}

func (c *memorySummaryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary = nil
	c.invalidations++
	return nil
}
