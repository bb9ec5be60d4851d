//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	appdonation "github.com/NapatKulnarong/ReMeals/internal/application/donation"
	identityapp "github.com/NapatKulnarong/ReMeals/internal/application/identity"
	logisticsapp "github.com/NapatKulnarong/ReMeals/internal/application/logistics"
	partnerapp "github.com/NapatKulnarong/ReMeals/internal/application/partner"
	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	"github.com/NapatKulnarong/ReMeals/internal/domain/identity"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
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
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	code := m.Run()
	CleanupSharedContainer()
	os.Exit(code)
}

type apiServer struct {
	t      *testing.T
	db     *TestDB
	engine *gin.Engine
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func newAPIServer(t *testing.T) *apiServer {
	tdb := NewSharedTestDB(t)

	repos := persistence.NewRepositories(tdb.DB)
	txScope := persistence.NewGormTransactionScope(tdb.DB)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "integration-secret-integration-secret",
		Issuer:                "remeals-integration",
		AccessTokenExpiration: time.Hour,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	impact := appdonation.NewImpactService(repos, nil, nil)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Identity(middleware.IdentityConfig{JWTService: jwtService, TokenBlacklist: blacklist}))
	router.Mount(engine, router.Handlers{
		Warehouse:  handler.NewWarehouseHandler(partnerapp.NewWarehouseService(repos.Warehouses(), repos.Deliveries(), repos.FoodItems())),
		Community:  handler.NewCommunityHandler(partnerapp.NewCommunityService(repos.Communities(), repos.Warehouses())),
		Restaurant: handler.NewRestaurantHandler(partnerapp.NewRestaurantService(repos.Restaurants(), repos.Chains()), partnerapp.NewChainService(repos.Chains())),
		Donation:   handler.NewDonationHandler(appdonation.NewDonationService(repos, txScope)),
		FoodItem:   handler.NewFoodItemHandler(appdonation.NewFoodItemService(repos, txScope, impact, nil)),
		Impact:     handler.NewImpactHandler(impact),
		Delivery:   handler.NewDeliveryHandler(logisticsapp.NewDeliveryService(repos, txScope, impact, nil)),
		Auth:       handler.NewAuthHandler(identityapp.NewAuthService(repos.Users(), jwtService, blacklist, nil)),
		User:       handler.NewUserHandler(identityapp.NewUserService(repos.Users(), repos.Roles(), nil)),
	})

	return &apiServer{t: t, db: tdb, engine: engine}
}

func (s *apiServer) request(method, path string, headers map[string]string, body string) (int, envelope) {
	s.t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Code != http.StatusNoContent {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func seedUser(t *testing.T, tdb *TestDB, id string, admin, driver bool) {
	t.Helper()
	require.NoError(t, tdb.DB.Create(&identity.User{
		UserID: id, Username: id, Fname: "F", Lname: "L", Phone: "0800000000",
		Email: id + "@example.com", PasswordHash: "x", IsAdmin: admin, IsDeliveryStaff: driver,
	}).Error)
}

func TestDonationToWarehouseFlow(t *testing.T) {
	s := newAPIServer(t)
	seedUser(t, s.db, "ADM1", true, false)
	seedUser(t, s.db, "DRV1", false, true)
	seedUser(t, s.db, "DNR1", false, false)

	admin := map[string]string{middleware.HeaderUserID: "ADM1", middleware.HeaderUserIsAdmin: "true"}
	driver := map[string]string{middleware.HeaderUserID: "DRV1", middleware.HeaderUserIsDelivery: "true"}
	today := shared.Today()

	code, _ := s.request(http.MethodPost, "/api/warehouses", nil,
		`{"warehouse_id":"WH1","address":"Dock 1","capacity":500,"stored_date":"`+today.String()+
			`","exp_date":"`+today.AddDays(90).String()+`"}`)
	require.Equal(t, http.StatusCreated, code)

	code, _ = s.request(http.MethodPost, "/api/restaurants", nil,
		`{"restaurant_id":"R1","name":"Kitchen","address":"Main St"}`)
	require.Equal(t, http.StatusCreated, code)

	code, resp := s.request(http.MethodPost, "/api/donations",
		map[string]string{middleware.HeaderUserID: "DNR1"}, `{"restaurant":"R1"}`)
	require.Equal(t, http.StatusCreated, code)
	var don appdonation.DonationResponse
	require.NoError(t, json.Unmarshal(resp.Data, &don))
	assert.Equal(t, "DON001", don.DonationID)

	require.NoError(t, s.db.DB.Create(&donation.FoodItem{
		FoodID: "F1", Name: "Rice", Quantity: 20, Unit: "kg",
		ExpireDate: today.AddDays(10), DonationID: don.DonationID,
	}).Error)

	code, resp = s.request(http.MethodPost, "/api/delivery/deliveries", admin, `{
		"delivery_type": "donation",
		"pickup_time": "2025-06-10T09:00:00Z",
		"dropoff_time": "11:30:00",
		"pickup_location_type": "restaurant",
		"dropoff_location_type": "warehouse",
		"warehouse_id": "WH1",
		"user_id": "DRV1",
		"donation_id": "DON001",
		"food_item": "F1",
		"delivery_quantity": "8 kg"
	}`)
	require.Equal(t, http.StatusCreated, code, resp.Error)
	var delivery logisticsapp.DeliveryResponse
	require.NoError(t, json.Unmarshal(resp.Data, &delivery))
	assert.Equal(t, "DLV0000001", delivery.DeliveryID)

	var item donation.FoodItem
	require.NoError(t, s.db.DB.First(&item, "food_id = ?", "F1").Error)
	assert.Equal(t, 12, item.Quantity)

	code, resp = s.request(http.MethodPatch, "/api/delivery/deliveries/"+delivery.DeliveryID, driver, `{"status":"delivered"}`)
	require.Equal(t, http.StatusOK, code, resp.Error)

	code, resp = s.request(http.MethodGet, "/api/warehouses/WH1/inventory", nil, "")
	require.Equal(t, http.StatusOK, code)
	var inv partnerapp.InventoryResponse
	require.NoError(t, json.Unmarshal(resp.Data, &inv))
	assert.Equal(t, 1, inv.TotalItems)

	t.Run("warehouse with deliveries cannot be removed", func(t *testing.T) {
		code, resp := s.request(http.MethodDelete, "/api/warehouses/WH1", nil, "")
		assert.Equal(t, http.StatusBadRequest, code)
		require.NotNil(t, resp.Error)
	})
}

func TestAccountFlow(t *testing.T) {
	s := newAPIServer(t)

	code, _ := s.request(http.MethodPost, "/api/users/signup", nil, `{"username":"bob","fname":"Bob","lname":"Lee",
		"bod":"1988-07-15","phone":"0899999999","email":"bob@example.com","password":"pa55word!"}`)
	require.Equal(t, http.StatusOK, code)

	code, resp := s.request(http.MethodPost, "/api/users/login", nil, `{"identifier":"bob","password":"pa55word!"}`)
	require.Equal(t, http.StatusOK, code)
	var login identityapp.LoginResponse
	require.NoError(t, json.Unmarshal(resp.Data, &login))
	require.NotEmpty(t, login.Token)

	bearer := map[string]string{middleware.AuthHeaderKey: "Bearer " + login.Token}
	code, resp = s.request(http.MethodGet, "/api/users/profile", bearer, "")
	require.Equal(t, http.StatusOK, code)
	var profile identityapp.ProfileResponse
	require.NoError(t, json.Unmarshal(resp.Data, &profile))
	assert.Equal(t, "bob@example.com", profile.Email)

	code, _ = s.request(http.MethodPost, "/api/users/logout", bearer, "")
	require.Equal(t, http.StatusOK, code)

	code, _ = s.request(http.MethodGet, "/api/users/profile", bearer, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}
