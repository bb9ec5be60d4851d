package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func text(body string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, body) }
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api", r.BasePath())
	assert.Empty(t, r.registrars)
}

func TestWithBasePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"v2", "/v2"},
		{"/api/v2/", "/api/v2"},
		{"", "/"},
	}
	for _, tt := range tests {
		r := NewRouter(gin.New(), WithBasePath(tt.in))
		assert.Equal(t, tt.want, r.BasePath(), tt.in)
	}
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", text("pong"))
	r.Register(group).Setup()

	w := serve(engine, http.MethodGet, "/api/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("warehouses", "/warehouses")
		assert.Equal(t, "warehouses", g.Name())
		assert.Equal(t, "/warehouses", g.Prefix())
	})

	t.Run("registers every verb", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test").
			GET("/items", text("get")).
			POST("/items", text("post")).
			PUT("/items/:id", text("put")).
			PATCH("/items/:id", text("patch")).
			DELETE("/items/:id", text("delete"))
		g.RegisterRoutes(engine.Group("/api"))

		for method, path := range map[string]string{
			http.MethodGet:    "/api/test/items",
			http.MethodPost:   "/api/test/items",
			http.MethodPut:    "/api/test/items/1",
			http.MethodPatch:  "/api/test/items/1",
			http.MethodDelete: "/api/test/items/1",
		} {
			w := serve(engine, method, path)
			assert.Equal(t, http.StatusOK, w.Code, method)
		}
	})

	t.Run("applies middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test").Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})
		g.GET("/items", text("ok"))
		g.RegisterRoutes(engine.Group("/api"))

		w := serve(engine, http.MethodGet, "/api/test/items")
		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("nests subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("delivery", "/delivery")
		g.Group("deliveries", "/deliveries").GET("", text("deliveries"))
		g.RegisterRoutes(engine.Group("/api"))

		w := serve(engine, http.MethodGet, "/api/delivery/deliveries")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "deliveries", w.Body.String())
	})
}

func TestResource(t *testing.T) {
	t.Run("update serves PUT and PATCH", func(t *testing.T) {
		engine := gin.New()
		NewDomainGroup("things", "/things").Resource(CRUD{
			List:   text("list"),
			Get:    text("get"),
			Create: text("create"),
			Update: text("update"),
			Delete: text("delete"),
		}).RegisterRoutes(engine.Group("/api"))

		assert.Equal(t, "list", serve(engine, http.MethodGet, "/api/things").Body.String())
		assert.Equal(t, "create", serve(engine, http.MethodPost, "/api/things").Body.String())
		assert.Equal(t, "get", serve(engine, http.MethodGet, "/api/things/7").Body.String())
		assert.Equal(t, "update", serve(engine, http.MethodPut, "/api/things/7").Body.String())
		assert.Equal(t, "update", serve(engine, http.MethodPatch, "/api/things/7").Body.String())
		assert.Equal(t, "delete", serve(engine, http.MethodDelete, "/api/things/7").Body.String())
	})

	t.Run("separate patch and skipped handlers", func(t *testing.T) {
		g := NewDomainGroup("things", "/things").Resource(CRUD{
			List:   text("list"),
			Update: text("update"),
			Patch:  text("patch"),
		})
		assert.Equal(t, []string{
			"GET /things",
			"PUT /things/:id",
			"PATCH /things/:id",
		}, g.Routes())

		engine := gin.New()
		g.RegisterRoutes(engine.Group("/api"))
		assert.Equal(t, "patch", serve(engine, http.MethodPatch, "/api/things/7").Body.String())
	})
}

func TestMultipleDomainGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Register(
		NewDomainGroup("warehouses", "/warehouses").GET("", text("warehouses")),
		NewDomainGroup("communities", "/communities").GET("", text("communities")),
	)
	r.Setup()

	assert.Equal(t, "warehouses", serve(engine, http.MethodGet, "/api/warehouses").Body.String())
	assert.Equal(t, "communities", serve(engine, http.MethodGet, "/api/communities").Body.String())
}
