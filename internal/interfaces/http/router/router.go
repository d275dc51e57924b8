package router

import (
	"net/http"

	"github.com/fleet/backend/internal/infrastructure/auth"
	"github.com/fleet/backend/internal/infrastructure/config"
	"github.com/fleet/backend/internal/interfaces/http/handler"
	"github.com/fleet/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers collects every HTTP handler the router mounts
type Handlers struct {
	Auth      *handler.AuthHandler
	Driver    *handler.DriverHandler
	History   *handler.HistoryHandler
	Trip      *handler.TripHandler
	Expense   *handler.ExpenseHandler
	Advance   *handler.AdvanceHandler
	Reference *handler.ReferenceHandler
	Period    *handler.PeriodHandler
	Payroll   *handler.PayrollHandler
	OtherItem *handler.OtherItemHandler
}

// Setup builds the gin engine with middleware and all API routes
func Setup(cfg *config.Config, logger *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestLogger(logger),
		middleware.CORS(cfg.HTTP.CORSAllowOrigins),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	// Public auth endpoints
	api.POST("/auth/login", h.Auth.Login)

	// Everything else requires a valid token
	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware(jwtService))
	{
		authed.POST("/auth/register", middleware.RequireRole("admin"), h.Auth.Register)
		authed.GET("/auth/me", h.Auth.Me)

		drivers := authed.Group("/drivers")
		{
			drivers.POST("", h.Driver.Create)
			drivers.GET("", h.Driver.List)
			drivers.GET("/:id", h.Driver.GetByID)
			drivers.PUT("/:id", h.Driver.Update)
			drivers.POST("/:id/deactivate", h.Driver.Deactivate)

			drivers.POST("/:id/commission", h.History.SetCommission)
			drivers.GET("/:id/commission", h.History.ListCommission)
			drivers.POST("/:id/minimum-guaranteed", h.History.SetMinimumGuaranteed)
			drivers.GET("/:id/minimum-guaranteed", h.History.ListMinimumGuaranteed)
		}
		authed.PUT("/commission-history/:id", h.History.UpdateCommission)
		authed.PUT("/minimum-guaranteed-history/:id", h.History.UpdateMinimumGuaranteed)

		trips := authed.Group("/trips")
		{
			trips.POST("", h.Trip.Create)
			trips.GET("", h.Trip.List)
			trips.GET("/:id", h.Trip.GetByID)
			trips.PUT("/:id", h.Trip.Update)
			trips.DELETE("/:id", h.Trip.Delete)
			trips.POST("/:id/start", h.Trip.Start)
			trips.POST("/:id/finish", h.Trip.Finish)
		}

		expenses := authed.Group("/expenses")
		{
			expenses.POST("", h.Expense.Create)
			expenses.GET("", h.Expense.List)
			expenses.GET("/:id", h.Expense.GetByID)
			expenses.PUT("/:id", h.Expense.Update)
			expenses.DELETE("/:id", h.Expense.Delete)
		}

		advances := authed.Group("/advances")
		{
			advances.POST("", h.Advance.Create)
			advances.GET("", h.Advance.List)
			advances.GET("/:id", h.Advance.GetByID)
			advances.PUT("/:id", h.Advance.Update)
			advances.DELETE("/:id", h.Advance.Delete)
		}

		trucks := authed.Group("/trucks")
		{
			trucks.POST("", h.Reference.CreateTruck)
			trucks.GET("", h.Reference.ListTrucks)
			trucks.GET("/:id", h.Reference.GetTruck)
			trucks.DELETE("/:id", h.Reference.DeleteTruck)
		}

		clients := authed.Group("/clients")
		{
			clients.POST("", h.Reference.CreateClient)
			clients.GET("", h.Reference.ListClients)
			clients.GET("/:id", h.Reference.GetClient)
			clients.DELETE("/:id", h.Reference.DeleteClient)
		}

		periods := authed.Group("/periods")
		{
			periods.POST("", h.Period.GetOrCreate)
			periods.GET("", h.Period.List)
			periods.GET("/:id", h.Period.GetByID)
			periods.POST("/:id/refresh", h.Period.Refresh)
			periods.POST("/:id/generate", h.Payroll.Generate)
			periods.GET("/:id/export", h.Period.Export)
		}

		summaries := authed.Group("/summaries")
		{
			summaries.POST("/calculate", h.Payroll.Calculate)
			summaries.GET("", h.Payroll.List)
			summaries.GET("/:id", h.Payroll.Get)
			summaries.DELETE("/:id", h.Payroll.Delete)
			summaries.POST("/:id/recalculate", h.Payroll.Recalculate)
			summaries.POST("/:id/submit", h.Payroll.Submit)
			summaries.POST("/:id/approve", middleware.RequireRole("admin"), h.Payroll.Approve)
		}

		otherItems := authed.Group("/other-items")
		{
			otherItems.POST("", h.OtherItem.Create)
			otherItems.GET("", h.OtherItem.ListByDriverAndPeriod)
			otherItems.GET("/:id", h.OtherItem.GetByID)
			otherItems.PUT("/:id", h.OtherItem.Update)
			otherItems.DELETE("/:id", h.OtherItem.Delete)
		}
	}

	return engine
}
