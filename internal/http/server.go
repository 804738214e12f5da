// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lastmile/internal/catalog"
	"lastmile/internal/http/handlers"
	"lastmile/internal/http/middleware"
	"lastmile/internal/modules/demand"
	"lastmile/internal/modules/dispatch"
	"lastmile/internal/modules/fleet"
	"lastmile/internal/modules/live"
	"lastmile/internal/modules/request"
)

type ServerDeps struct {
	Catalog  *catalog.Catalog
	Requests *request.Service
	Dispatch *dispatch.Service
	View     *live.View
	// Fleet and Demand are optional; their endpoints answer 503 when unset.
	Fleet  *fleet.Service
	Demand *demand.Generator
	Log    *slog.Logger
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(s.deps.Log), middleware.Recovery())

	requestHandler := handlers.NewRequestHandler(s.deps.Requests, s.deps.Dispatch)
	r.POST("/api/rides/request", requestHandler.Create)
	r.GET("/api/requests", requestHandler.List)
	r.GET("/api/requests/:id", requestHandler.Get)

	routeHandler := handlers.NewRouteHandler(s.deps.View, s.deps.Requests)
	r.GET("/api/routes/active", routeHandler.Active)
	r.GET("/api/routes/active/:key", routeHandler.Get)
	r.GET("/api/stats", routeHandler.Stats)

	locationHandler := handlers.NewLocationHandler(s.deps.Catalog)
	r.GET("/api/locations", locationHandler.List)

	vehicleHandler := handlers.NewVehicleHandler(s.deps.Fleet)
	r.GET("/api/vehicles", vehicleHandler.List)
	r.PUT("/api/vehicles/:id/location", vehicleHandler.UpdateLocation)

	demoHandler := handlers.NewDemoHandler(s.deps.Demand, s.deps.Dispatch)
	r.POST("/api/demo/generate-requests", demoHandler.Generate)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
