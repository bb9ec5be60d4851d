package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appdonation "github.com/NapatKulnarong/ReMeals/internal/application/donation"
	identityapp "github.com/NapatKulnarong/ReMeals/internal/application/identity"
	logisticsapp "github.com/NapatKulnarong/ReMeals/internal/application/logistics"
	partnerapp "github.com/NapatKulnarong/ReMeals/internal/application/partner"
	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	"github.com/NapatKulnarong/ReMeals/internal/domain/identity"
	"github.com/NapatKulnarong/ReMeals/internal/domain/logistics"
	"github.com/NapatKulnarong/ReMeals/internal/domain/partner"
	domainshared "github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/auth"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/config"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/persistence"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/dto"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/handler"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/middleware"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiEnv struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

type identityHeaders struct {
	userID   string
	admin    bool
	driver   bool
	bearer   string
	absented bool
}

var (
	anonymous = identityHeaders{absented: true}
	asAdmin   = identityHeaders{userID: "ADM1", admin: true}
)

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	database, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}, nil)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate())
	t.Cleanup(func() { _ = database.Close() })

	db := database.DB
	repos := persistence.NewRepositories(db)
	txScope := persistence.NewGormTransactionScope(db)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "handler-test-secret-handler-test-secret",
		Issuer:                "remeals-test",
		AccessTokenExpiration: time.Hour,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	impact := appdonation.NewImpactService(repos, nil, nil)
	handlers := router.Handlers{
		Warehouse:       handler.NewWarehouseHandler(partnerapp.NewWarehouseService(repos.Warehouses(), repos.Deliveries(), repos.FoodItems())),
		Community:       handler.NewCommunityHandler(partnerapp.NewCommunityService(repos.Communities(), repos.Warehouses())),
		Restaurant:      handler.NewRestaurantHandler(partnerapp.NewRestaurantService(repos.Restaurants(), repos.Chains()), partnerapp.NewChainService(repos.Chains())),
		Donation:        handler.NewDonationHandler(appdonation.NewDonationService(repos, txScope)),
		FoodItem:        handler.NewFoodItemHandler(appdonation.NewFoodItemService(repos, txScope, impact, nil)),
		Impact:          handler.NewImpactHandler(impact),
		DonationRequest: handler.NewDonationRequestHandler(appdonation.NewDonationRequestService(repos, txScope)),
		Delivery:        handler.NewDeliveryHandler(logisticsapp.NewDeliveryService(repos, txScope, impact, nil)),
		Auth:            handler.NewAuthHandler(identityapp.NewAuthService(repos.Users(), jwtService, blacklist, nil)),
		User:            handler.NewUserHandler(identityapp.NewUserService(repos.Users(), repos.Roles(), nil)),
		Health:          handler.NewHealthHandler(database, "test"),
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Identity(middleware.IdentityConfig{JWTService: jwtService, TokenBlacklist: blacklist}))
	router.Mount(engine, handlers)

	return &apiEnv{t: t, db: db, engine: engine}
}

func (e *apiEnv) seed(values ...any) {
	e.t.Helper()
	for _, v := range values {
		require.NoError(e.t, e.db.Create(v).Error)
	}
}

func (e *apiEnv) do(method, path string, who identityHeaders, body string) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if !who.absented {
		if who.userID != "" {
			req.Header.Set(middleware.HeaderUserID, who.userID)
		}
		if who.admin {
			req.Header.Set(middleware.HeaderUserIsAdmin, "true")
		}
		if who.driver {
			req.Header.Set(middleware.HeaderUserIsDelivery, "1")
		}
		if who.bearer != "" {
			req.Header.Set(middleware.AuthHeaderKey, "Bearer "+who.bearer)
		}
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	var env envelope
	if w.Code != http.StatusNoContent {
		require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func testUser(id string) *identity.User {
	return &identity.User{UserID: id, Username: id, Fname: "F", Lname: "L", Phone: "0800000000",
		Email: id + "@example.com", PasswordHash: "x"}
}

func TestWarehouseAPI(t *testing.T) {
	env := newAPIEnv(t)
	today := domainshared.Today()
	body := `{"warehouse_id":"WH1","address":"Dock 1","capacity":100,"stored_date":"` + today.String() +
		`","exp_date":"` + today.AddDays(30).String() + `"}`

	w, resp := env.do(http.MethodPost, "/api/warehouses", anonymous, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[partnerapp.WarehouseResponse](t, resp.Data)
	assert.Equal(t, "WH1", created.WarehouseID)

	t.Run("duplicate key", func(t *testing.T) {
		w, resp := env.do(http.MethodPost, "/api/warehouses", anonymous, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		require.NotEmpty(t, resp.Error.Details)
		assert.Equal(t, "warehouse_id", resp.Error.Details[0].Field)
	})

	t.Run("binding failure", func(t *testing.T) {
		w, resp := env.do(http.MethodPost, "/api/warehouses", anonymous, `{"warehouse_id":"WAY-TOO-LONG-ID"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	})

	t.Run("get and list", func(t *testing.T) {
		w, _ := env.do(http.MethodGet, "/api/warehouses/WH1", anonymous, "")
		assert.Equal(t, http.StatusOK, w.Code)

		w, resp := env.do(http.MethodGet, "/api/warehouses?page_size=10", anonymous, "")
		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)
		assert.Equal(t, 10, resp.Meta.PageSize)
	})

	t.Run("unknown id", func(t *testing.T) {
		w, resp := env.do(http.MethodGet, "/api/warehouses/NOPE", anonymous, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("full update needs every field", func(t *testing.T) {
		w, resp := env.do(http.MethodPut, "/api/warehouses/WH1", anonymous, `{"address":"Dock 2"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	})

	t.Run("partial update", func(t *testing.T) {
		w, resp := env.do(http.MethodPatch, "/api/warehouses/WH1", anonymous, `{"address":"Dock 2"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Dock 2", decode[partnerapp.WarehouseResponse](t, resp.Data).Address)
	})

	t.Run("inventory of an empty warehouse", func(t *testing.T) {
		w, resp := env.do(http.MethodGet, "/api/warehouses/WH1/inventory", anonymous, "")
		require.Equal(t, http.StatusOK, w.Code)
		inv := decode[partnerapp.InventoryResponse](t, resp.Data)
		assert.Equal(t, "WH1", inv.WarehouseID)
		assert.Equal(t, 0, inv.TotalItems)
	})

	t.Run("delete", func(t *testing.T) {
		w, _ := env.do(http.MethodDelete, "/api/warehouses/WH1", anonymous, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		w, _ = env.do(http.MethodGet, "/api/warehouses/WH1", anonymous, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func restaurantIDs(t *testing.T, raw json.RawMessage) []string {
	t.Helper()
	var ids []string
	for _, r := range decode[[]partnerapp.RestaurantResponse](t, raw) {
		ids = append(ids, r.RestaurantID)
	}
	return ids
}

func TestRestaurantAPI(t *testing.T) {
	env := newAPIEnv(t)
	today := domainshared.Today()

	w, resp := env.do(http.MethodPost, "/api/restaurant-chains", anonymous, `{"chain_name":"Green Group"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	chain := decode[partnerapp.ChainResponse](t, resp.Data)
	assert.Equal(t, "CHA001", chain.ChainID)

	for _, body := range []string{
		`{"restaurant_id":"R1","name":"Green Bowl","address":"1 Main St","is_chain":true}`,
		`{"restaurant_id":"R2","name":"Green Bowl","branch_name":"Riverside","address":"2 River Rd",
			"chain_id":"R1","restaurant_chain_id":"CHA001"}`,
		`{"restaurant_id":"R3","name":"Taco Stand","address":"3 Side St"}`,
	} {
		w, _ := env.do(http.MethodPost, "/api/restaurants", anonymous, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	t.Run("search matches name or branch", func(t *testing.T) {
		w, resp := env.do(http.MethodGet, "/api/restaurants?search=RIVER", anonymous, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"R2"}, restaurantIDs(t, resp.Data))

		_, resp = env.do(http.MethodGet, "/api/restaurants?search=green", anonymous, "")
		assert.ElementsMatch(t, []string{"R1", "R2"}, restaurantIDs(t, resp.Data))

		_, resp = env.do(http.MethodGet, "/api/restaurants?search=%25", anonymous, "")
		assert.Empty(t, restaurantIDs(t, resp.Data))
	})

	t.Run("is_chain filter", func(t *testing.T) {
		_, resp := env.do(http.MethodGet, "/api/restaurants?is_chain=true", anonymous, "")
		assert.Equal(t, []string{"R1"}, restaurantIDs(t, resp.Data))

		_, resp = env.do(http.MethodGet, "/api/restaurants?is_chain=false", anonymous, "")
		assert.ElementsMatch(t, []string{"R2", "R3"}, restaurantIDs(t, resp.Data))
	})

	t.Run("branches", func(t *testing.T) {
		w, resp := env.do(http.MethodGet, "/api/restaurants/R1/branches", anonymous, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"R2"}, restaurantIDs(t, resp.Data))

		w, _ = env.do(http.MethodGet, "/api/restaurants/NOPE/branches", anonymous, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	donations := persistence.NewRepositories(env.db).Donations()
	headDonation := donation.NewDonation("R1", nil)
	require.NoError(t, donations.Create(t.Context(), headDonation))
	otherDonation := donation.NewDonation("R3", nil)
	require.NoError(t, donations.Create(t.Context(), otherDonation))
	chainID := chain.ChainID
	env.seed(
		&donation.FoodItem{FoodID: "F1", Name: "Rice", Quantity: 5, Unit: "kg",
			ExpireDate: today.AddDays(5), DonationID: headDonation.DonationID},
		&donation.FoodItem{FoodID: "F3", Name: "Beans", Quantity: 3, Unit: "kg",
			ExpireDate: today.AddDays(5), DonationID: otherDonation.DonationID, ChainID: &chainID},
	)

	t.Run("chain delete clears references", func(t *testing.T) {
		w, _ := env.do(http.MethodDelete, "/api/restaurant-chains/CHA001", anonymous, "")
		require.Equal(t, http.StatusNoContent, w.Code)

		var branch partner.Restaurant
		require.NoError(t, env.db.First(&branch, "restaurant_id = ?", "R2").Error)
		assert.Nil(t, branch.RestaurantChainID)

		var item donation.FoodItem
		require.NoError(t, env.db.First(&item, "food_id = ?", "F3").Error)
		assert.Nil(t, item.ChainID)
	})

	t.Run("restaurant delete cascades to donations", func(t *testing.T) {
		w, _ := env.do(http.MethodDelete, "/api/restaurants/R1", anonymous, "")
		require.Equal(t, http.StatusNoContent, w.Code)

		var count int64
		require.NoError(t, env.db.Model(&donation.Donation{}).Where("restaurant_id = ?", "R1").Count(&count).Error)
		assert.Zero(t, count)
		require.NoError(t, env.db.Model(&donation.FoodItem{}).Where("food_id = ?", "F1").Count(&count).Error)
		assert.Zero(t, count)
		require.NoError(t, env.db.Model(&donation.FoodItem{}).Where("food_id = ?", "F3").Count(&count).Error)
		assert.Equal(t, int64(1), count)

		var branch partner.Restaurant
		require.NoError(t, env.db.First(&branch, "restaurant_id = ?", "R2").Error)
		assert.Nil(t, branch.ChainID)
	})
}

func TestCommunityAPI(t *testing.T) {
	env := newAPIEnv(t)
	today := domainshared.Today()
	env.seed(&partner.Warehouse{WarehouseID: "WH1", Address: "Dock", Capacity: 100, StoredDate: today, ExpDate: today.AddDays(30)})

	create := func(id, name string) {
		t.Helper()
		w, _ := env.do(http.MethodPost, "/api/communities", anonymous, `{"community_id":"`+id+`","name":"`+name+
			`","address":"9 Hill Rd","received_time":"2025-06-01T10:00:00Z","population":120,"warehouse_id":"WH1"}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	create("C1", "North Shelter")
	create("C2", "South Kitchen")

	t.Run("unknown warehouse", func(t *testing.T) {
		w, resp := env.do(http.MethodPost, "/api/communities", anonymous, `{"community_id":"C9","name":"X",
			"address":"Y","received_time":"2025-06-01T10:00:00Z","population":1,"warehouse_id":"NOPE"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
	})

	t.Run("search", func(t *testing.T) {
		w, resp := env.do(http.MethodGet, "/api/communities?search=north", anonymous, "")
		require.Equal(t, http.StatusOK, w.Code)
		found := decode[[]partnerapp.CommunityResponse](t, resp.Data)
		require.Len(t, found, 1)
		assert.Equal(t, "C1", found[0].CommunityID)
	})

	wh, community := "WH1", "C1"
	env.seed(&logistics.Delivery{
		DeliveryID: "DLV0000001", DeliveryType: logistics.TypeDistribution,
		PickupTime: time.Now(), DropoffTime: time.Now().Add(time.Hour),
		PickupLocationType: logistics.LocationWarehouse, DropoffLocationType: logistics.LocationCommunity,
		Status: logistics.StatusPending, WarehouseID: &wh, CommunityID: &community,
	})

	t.Run("delete blocked by deliveries", func(t *testing.T) {
		w, resp := env.do(http.MethodDelete, "/api/communities/C1", anonymous, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeProtected, resp.Error.Code)

		w, _ = env.do(http.MethodGet, "/api/communities/C1", anonymous, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("delete detaches donation requests", func(t *testing.T) {
		target := "C2"
		env.seed(&donation.DonationRequest{
			RequestID: "REQ0000001", Title: "Lunch", RecipientAddress: "9 Hill Rd",
			ExpectedDelivery: time.Now().Add(24 * time.Hour), PeopleCount: 40,
			CreatedAt: time.Now(), CommunityID: &target, Status: donation.StatusPending,
		})

		w, _ := env.do(http.MethodDelete, "/api/communities/C2", anonymous, "")
		require.Equal(t, http.StatusNoContent, w.Code)

		var req donation.DonationRequest
		require.NoError(t, env.db.First(&req, "request_id = ?", "REQ0000001").Error)
		assert.Nil(t, req.CommunityID)
	})
}

func TestDonationAPI(t *testing.T) {
	env := newAPIEnv(t)
	env.seed(testUser("DNR1"))

	w, resp := env.do(http.MethodPost, "/api/donations", identityHeaders{userID: "DNR1"},
		`{"manual_restaurant_name":"Noodle Bar"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[appdonation.DonationResponse](t, resp.Data)
	assert.Equal(t, "DON001", created.DonationID)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "Noodle Bar", created.RestaurantName)
	assert.Equal(t, "Main Location", created.RestaurantBranch)
	require.NotNil(t, created.CreatedByUserID)
	assert.Equal(t, "DNR1", *created.CreatedByUserID)

	t.Run("neither restaurant nor manual name", func(t *testing.T) {
		w, resp := env.do(http.MethodPost, "/api/donations", anonymous, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "Provide either an existing restaurant ID or a manual restaurant name.", resp.Error.Message)
	})

	t.Run("another user may not modify it", func(t *testing.T) {
		env.seed(testUser("OTHER"))
		w, resp := env.do(http.MethodPatch, "/api/donations/DON001", identityHeaders{userID: "OTHER"}, `{"status":"accepted"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeForbidden, resp.Error.Code)
	})

	t.Run("status filter", func(t *testing.T) {
		w, resp := env.do(http.MethodGet, "/api/donations?status=pending", anonymous, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]appdonation.DonationResponse](t, resp.Data), 1)

		w, resp = env.do(http.MethodGet, "/api/donations?status=bogus", anonymous, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode[[]appdonation.DonationResponse](t, resp.Data))
	})

	t.Run("owner deletes", func(t *testing.T) {
		w, _ := env.do(http.MethodDelete, "/api/donations/DON001", identityHeaders{userID: "DNR1"}, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

type deliveryFixture struct {
	*apiEnv
	donationID string
}

func newDeliveryFixture(t *testing.T) *deliveryFixture {
	env := newAPIEnv(t)
	today := domainshared.Today()
	env.seed(
		&partner.Warehouse{WarehouseID: "WH1", Address: "Dock", Capacity: 100, StoredDate: today, ExpDate: today.AddDays(30)},
		&partner.Restaurant{RestaurantID: "R1", Name: "Kitchen", Address: "Main St"},
		testUser("ADM1"), testUser("DRV1"), testUser("DRV2"),
	)
	d := donation.NewDonation("R1", nil)
	require.NoError(t, persistence.NewRepositories(env.db).Donations().Create(t.Context(), d))
	env.seed(&donation.FoodItem{FoodID: "F1", Name: "Rice", Quantity: 20, Unit: "kg",
		ExpireDate: today.AddDays(5), DonationID: d.DonationID})
	return &deliveryFixture{apiEnv: env, donationID: d.DonationID}
}

func (f *deliveryFixture) pickup(qty string) string {
	return `{
		"delivery_type": "donation",
		"pickup_time": "2025-06-10T09:00:00Z",
		"dropoff_time": "11:30:00",
		"pickup_location_type": "restaurant",
		"dropoff_location_type": "warehouse",
		"warehouse_id": "WH1",
		"user_id": "DRV1",
		"donation_id": "` + f.donationID + `",
		"food_item": "F1",
		"delivery_quantity": "` + qty + `"
	}`
}

func (f *deliveryFixture) stock() int {
	var item donation.FoodItem
	require.NoError(f.t, f.db.First(&item, "food_id = ?", "F1").Error)
	return item.Quantity
}

func TestDeliveryAPI(t *testing.T) {
	f := newDeliveryFixture(t)

	w, resp := f.do(http.MethodPost, "/api/delivery/deliveries", identityHeaders{userID: "DRV1", driver: true}, f.pickup("5 kg"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Admin privileges required.", resp.Error.Message)

	w, resp = f.do(http.MethodPost, "/api/delivery/deliveries", asAdmin, f.pickup("5 kg"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[logisticsapp.DeliveryResponse](t, resp.Data)
	assert.Equal(t, "DLV0000001", created.DeliveryID)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, 15, f.stock())

	t.Run("quantity above stock", func(t *testing.T) {
		w, resp := f.do(http.MethodPost, "/api/delivery/deliveries", asAdmin, f.pickup("50"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "Quantity (50) exceeds available quantity (15) for Rice", resp.Error.Message)
		assert.Equal(t, 15, f.stock())
	})

	t.Run("visibility", func(t *testing.T) {
		_, resp := f.do(http.MethodGet, "/api/delivery/deliveries", identityHeaders{userID: "DRV1", driver: true}, "")
		assert.Len(t, decode[[]logisticsapp.DeliveryResponse](t, resp.Data), 1)

		_, resp = f.do(http.MethodGet, "/api/delivery/deliveries", identityHeaders{userID: "DRV2", driver: true}, "")
		assert.Empty(t, decode[[]logisticsapp.DeliveryResponse](t, resp.Data))

		_, resp = f.do(http.MethodGet, "/api/delivery/deliveries", anonymous, "")
		assert.Empty(t, decode[[]logisticsapp.DeliveryResponse](t, resp.Data))
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(0), resp.Meta.Total)

		w, _ := f.do(http.MethodGet, "/api/delivery/deliveries/"+created.DeliveryID, identityHeaders{userID: "DRV2", driver: true}, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("assigned driver patches status", func(t *testing.T) {
		w, resp := f.do(http.MethodPatch, "/api/delivery/deliveries/"+created.DeliveryID,
			identityHeaders{userID: "DRV2", driver: true}, `{"status":"in_transit"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "Not permitted.", resp.Error.Message)

		w, resp = f.do(http.MethodPatch, "/api/delivery/deliveries/"+created.DeliveryID,
			identityHeaders{userID: "DRV1", driver: true}, `{"status":"in_transit","delivery_quantity":"1"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		updated := decode[logisticsapp.DeliveryResponse](t, resp.Data)
		assert.Equal(t, "in_transit", updated.Status)
		assert.Equal(t, 15, f.stock())

		w, resp = f.do(http.MethodPatch, "/api/delivery/deliveries/"+created.DeliveryID,
			identityHeaders{userID: "DRV1", driver: true}, `{"user_id":"DRV2"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "No updatable fields provided.", resp.Error.Message)
	})

	t.Run("only admins delete", func(t *testing.T) {
		w, _ := f.do(http.MethodDelete, "/api/delivery/deliveries/"+created.DeliveryID, identityHeaders{userID: "DRV1", driver: true}, "")
		assert.Equal(t, http.StatusForbidden, w.Code)

		w, _ = f.do(http.MethodDelete, "/api/delivery/deliveries/"+created.DeliveryID, asAdmin, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, 15, f.stock())
	})
}

func TestFoodItemAndImpactAPI(t *testing.T) {
	f := newDeliveryFixture(t)

	w, resp := f.do(http.MethodGet, "/api/fooditems/F1", anonymous, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "F0001", decode[appdonation.FoodItemResponse](t, resp.Data).FoodID)

	w, resp = f.do(http.MethodPut, "/api/fooditems/F1", anonymous, `{"is_distributed":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	item := decode[appdonation.FoodItemResponse](t, resp.Data)
	assert.True(t, item.IsClaimed)
	assert.True(t, item.IsDistributed)

	w, resp = f.do(http.MethodGet, "/api/impact", anonymous, "")
	require.Equal(t, http.StatusOK, w.Code)
	records := decode[[]appdonation.ImpactRecordResponse](t, resp.Data)
	require.Len(t, records, 1)
	assert.Equal(t, "IMP001", records[0].ImpactID)
	assert.InDelta(t, 10.0, records[0].MealsSaved, 1e-9)

	w, resp = f.do(http.MethodGet, "/api/impact/summary", anonymous, "")
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[donation.ImpactSummary](t, resp.Data)
	assert.Equal(t, int64(1), summary.Records)
	assert.InDelta(t, 4.0, summary.WeightSavedKg, 1e-9)

	w, resp = f.do(http.MethodPost, "/api/impact", anonymous, `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, `Method "POST" not allowed.`, resp.Error.Message)

	t.Run("unclaiming a distributed item", func(t *testing.T) {
		w, resp := f.do(http.MethodPatch, "/api/fooditems/F1", anonymous, `{"is_claimed":false}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "Cannot unclaim an item that has already been distributed.", resp.Error.Message)
	})
}

func TestAccountAPI(t *testing.T) {
	env := newAPIEnv(t)
	signup := `{"username":"alice","fname":"Alice","lname":"Smith","bod":"01/02/1990",
		"phone":"0812345678","email":"alice@example.com","password":"s3cret-pass"}`

	w, resp := env.do(http.MethodPost, "/api/users/signup", anonymous, signup)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, identityapp.MsgSignupSuccessful, decode[identityapp.MessageResponse](t, resp.Data).Message)

	w, resp = env.do(http.MethodPost, "/api/users/signup", anonymous, signup)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Username already exists", resp.Error.Message)

	w, resp = env.do(http.MethodPost, "/api/users/login", anonymous, `{"identifier":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, identityapp.MsgInvalidPassword, resp.Error.Message)

	w, _ = env.do(http.MethodPost, "/api/users/login", anonymous, `{"identifier":"nobody","password":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp = env.do(http.MethodPost, "/api/users/login", anonymous, `{"identifier":"alice@example.com","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decode[identityapp.LoginResponse](t, resp.Data)
	require.NotEmpty(t, login.Token)
	assert.Len(t, login.UserID, 10)
	bearer := identityHeaders{bearer: login.Token}

	w, resp = env.do(http.MethodGet, "/api/users/profile", bearer, "")
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode[identityapp.ProfileResponse](t, resp.Data)
	assert.Equal(t, "alice", profile.Username)
	require.NotNil(t, profile.Bod)
	assert.Equal(t, "1990-02-01", profile.Bod.String())

	w, resp = env.do(http.MethodPatch, "/api/users/profile", bearer, `{"fname":"Alicia"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Alicia", decode[identityapp.ProfileResponse](t, resp.Data).Fname)

	w, _ = env.do(http.MethodPost, "/api/users/logout", anonymous, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = env.do(http.MethodPost, "/api/users/logout", bearer, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = env.do(http.MethodGet, "/api/users/profile", bearer, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Token has been revoked", resp.Error.Message)
}

func TestHealth(t *testing.T) {
	env := newAPIEnv(t)
	w, resp := env.do(http.MethodGet, "/health", anonymous, "")
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[handler.HealthResponse](t, resp.Data)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "test", health.Version)
}
