package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rentbook/internal/handler/api"
	"rentbook/internal/handler/middleware"
	"rentbook/internal/infra/metrics"
	"rentbook/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	itemHandler *api.ItemHandler,
	availabilityHandler *api.AvailabilityHandler,
	reservationHandler *api.ReservationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, itemHandler, availabilityHandler, reservationHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	engine.Use(metrics.Middleware)
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	itemHandler *api.ItemHandler,
	availabilityHandler *api.AvailabilityHandler,
	reservationHandler *api.ReservationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		items := apiGroup.Group("/items")
		{
			addRoutes(items, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: itemHandler.GetItem},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: availabilityHandler.GetAvailability},
			})

			itemsAuth := items.Group("")
			itemsAuth.Use(authMiddleware.RequireAuth())
			addRoutes(itemsAuth, []route{
				{Method: http.MethodPost, Path: "", Handler: itemHandler.CreateItem},
				{Method: http.MethodGet, Path: "/:id/bookings", Handler: itemHandler.GetItemBookings},
			})
		}

		availability := apiGroup.Group("/availability")
		addRoutes(availability, []route{
			{Method: http.MethodPost, Path: "/check", Handler: availabilityHandler.CheckRange},
		})

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.OptionalAuth())
		addRoutes(reservations, []route{
			{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateReservation},
		})

		holds := apiGroup.Group("/holds")
		holds.Use(authMiddleware.RequireAuth())
		addRoutes(holds, []route{
			{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateHold},
			{Method: http.MethodPost, Path: "/:id/confirm", Handler: reservationHandler.ConfirmHold},
			{Method: http.MethodDelete, Path: "/:id", Handler: reservationHandler.ReleaseHold},
		})

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		addRoutes(orders, []route{
			{Method: http.MethodPost, Path: "/:id/release", Handler: reservationHandler.ReleaseOrder},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
