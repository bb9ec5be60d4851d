package router

import (
	"net/http"

	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/dto"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/handler"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every API handler
type Handlers struct {
	Warehouse       *handler.WarehouseHandler
	Community       *handler.CommunityHandler
	Restaurant      *handler.RestaurantHandler
	Donation        *handler.DonationHandler
	FoodItem        *handler.FoodItemHandler
	Impact          *handler.ImpactHandler
	DonationRequest *handler.DonationRequestHandler
	Delivery        *handler.DeliveryHandler
	Auth            *handler.AuthHandler
	User            *handler.UserHandler
	Health          *handler.HealthHandler
}

// Groups builds the domain route groups of the API
func (h Handlers) Groups() []*DomainGroup {
	warehouses := NewDomainGroup("warehouses", "/warehouses").Resource(CRUD{
		List:   h.Warehouse.List,
		Get:    h.Warehouse.GetByID,
		Create: h.Warehouse.Create,
		Update: h.Warehouse.Update,
		Delete: h.Warehouse.Delete,
	})
	warehouses.GET("/:id/inventory", h.Warehouse.Inventory)

	communities := NewDomainGroup("communities", "/communities").Resource(CRUD{
		List:   h.Community.List,
		Get:    h.Community.GetByID,
		Create: h.Community.Create,
		Update: h.Community.Update,
		Delete: h.Community.Delete,
	})

	restaurants := NewDomainGroup("restaurants", "/restaurants").Resource(CRUD{
		List:   h.Restaurant.List,
		Get:    h.Restaurant.GetByID,
		Create: h.Restaurant.Create,
		Update: h.Restaurant.Update,
		Delete: h.Restaurant.Delete,
	})
	restaurants.GET("/:id/branches", h.Restaurant.Branches)

	chains := NewDomainGroup("restaurant-chains", "/restaurant-chains").Resource(CRUD{
		List:   h.Restaurant.ListChains,
		Get:    h.Restaurant.GetChain,
		Create: h.Restaurant.CreateChain,
		Update: h.Restaurant.UpdateChain,
		Delete: h.Restaurant.DeleteChain,
	})

	donations := NewDomainGroup("donations", "/donations").Resource(CRUD{
		List:   h.Donation.List,
		Get:    h.Donation.GetByID,
		Create: h.Donation.Create,
		Update: h.Donation.Update,
		Delete: h.Donation.Delete,
	})

	foodItems := NewDomainGroup("fooditems", "/fooditems").Resource(CRUD{
		List:   h.FoodItem.List,
		Get:    h.FoodItem.GetByID,
		Create: h.FoodItem.Create,
		Update: h.FoodItem.Update,
		Delete: h.FoodItem.Delete,
	})

	impact := NewDomainGroup("impact", "/impact").Resource(CRUD{
		List:   h.Impact.List,
		Get:    h.Impact.GetByID,
		Create: h.Impact.ReadOnly,
		Update: h.Impact.ReadOnly,
		Delete: h.Impact.ReadOnly,
	})
	impact.GET("/summary", h.Impact.Summary)

	requests := NewDomainGroup("donation-requests", "/donation-requests").Resource(CRUD{
		List:   h.DonationRequest.List,
		Get:    h.DonationRequest.GetByID,
		Create: h.DonationRequest.Create,
		Update: h.DonationRequest.Update,
		Delete: h.DonationRequest.Delete,
	})

	delivery := NewDomainGroup("delivery", "/delivery")
	delivery.Group("deliveries", "/deliveries").Resource(CRUD{
		List:   h.Delivery.List,
		Get:    h.Delivery.GetByID,
		Create: h.Delivery.Create,
		Update: h.Delivery.Update,
		Patch:  h.Delivery.UpdateStatus,
		Delete: h.Delivery.Delete,
	})

	users := NewDomainGroup("users", "/users").
		POST("/signup", h.Auth.Signup).
		POST("/login", h.Auth.Login).
		POST("/logout", h.Auth.Logout).
		GET("/delivery-staff", h.User.DeliveryStaff).
		GET("/profile", h.User.Profile).
		PUT("/profile", h.User.UpdateProfile).
		PATCH("/profile", h.User.UpdateProfile)

	return []*DomainGroup{
		warehouses, communities, restaurants, chains, donations, foodItems,
		impact, requests, delivery, users,
	}
}

// Mount registers the API groups on the engine and answers unknown routes and
// unsupported methods with the error envelope.
func Mount(engine *gin.Engine, h Handlers, opts ...RouterOption) *Router {
	r := NewRouter(engine, opts...)
	for _, g := range h.Groups() {
		r.Register(g)
	}
	r.Setup()

	if h.Health != nil {
		engine.GET("/health", h.Health.Health)
		engine.GET("/ping", h.Health.Ping)
	}

	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeMethodNotAllowed,
			`Method "`+c.Request.Method+`" not allowed.`,
			middleware.GetRequestID(c),
		))
	})
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Not found.", middleware.GetRequestID(c),
		))
	})
	return r
}
