package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfmaster/backend/internal/application/identity"
	domainidentity "github.com/shelfmaster/backend/internal/domain/identity"
	"github.com/shelfmaster/backend/internal/interfaces/http/handler"
	"github.com/shelfmaster/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every handler the router mounts
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Lending     *handler.LendingHandler
	Catalog     *handler.CatalogHandler
	Acquisition *handler.AcquisitionHandler
	Report      *handler.ReportHandler
	Audit       *handler.AuditHandler
}

// Config holds router construction options
type Config struct {
	AuthService *identity.AuthService
	CORS        middleware.CORSConfig
}

// New assembles the gin engine with middleware and all API routes.
// Staff can run the day-to-day circulation desk; admin-only surfaces are
// user management, acquisition approval and the audit trail.
func New(handlers Handlers, cfg Config) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORSWithConfig(cfg.CORS))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	api.Use(middleware.Auth(cfg.AuthService))

	staff := middleware.RequireRoles(
		domainidentity.RoleAdmin.String(),
		domainidentity.RoleStaff.String(),
	)
	admin := middleware.RequireRoles(domainidentity.RoleAdmin.String())

	auth := api.Group("/auth")
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/refresh", handlers.Auth.Refresh)
		auth.POST("/logout", handlers.Auth.Logout)
	}

	users := api.Group("/users")
	{
		users.POST("/me/password", handlers.User.ChangePassword)
		users.POST("", admin, handlers.User.Register)
		users.GET("", staff, handlers.User.List)
		users.GET("/:id", staff, handlers.User.Get)
		users.POST("/:id/deactivate", admin, handlers.User.Deactivate)
		users.POST("/:id/activate", admin, handlers.User.Activate)
	}

	loans := api.Group("/loans", staff)
	{
		loans.POST("", handlers.Lending.Issue)
		loans.GET("", handlers.Lending.List)
		loans.POST("/scan", handlers.Lending.TriggerScan)
		loans.GET("/:id", handlers.Lending.Get)
		loans.POST("/:id/return", handlers.Lending.Return)
		loans.POST("/:id/renew", handlers.Lending.Renew)
		loans.POST("/:id/lost", handlers.Lending.MarkLost)
		loans.POST("/:id/damaged", handlers.Lending.MarkDamaged)
		loans.GET("/:id/penalties", handlers.Lending.ListPenalties)
		loans.POST("/:id/payments", handlers.Lending.SettlePayment)
	}

	api.GET("/borrowers/:id/loans", staff, handlers.Lending.ListByBorrower)
	api.GET("/borrowers/:id/penalties", staff, handlers.Lending.ListBorrowerPenalties)

	books := api.Group("/books", staff)
	{
		books.POST("", handlers.Catalog.CatalogueBook)
		books.GET("", handlers.Catalog.SearchBooks)
		books.GET("/:id", handlers.Catalog.GetBook)
		books.POST("/:id/archive", handlers.Catalog.ArchiveBook)
		books.POST("/:id/restore", handlers.Catalog.RestoreBook)
		books.POST("/:id/copies", handlers.Catalog.AddCopy)
		books.GET("/:id/copies", handlers.Catalog.ListCopies)
	}

	copies := api.Group("/copies", staff)
	{
		copies.GET("/archived", handlers.Catalog.ListArchivedCopies)
		copies.POST("/:id/archive", handlers.Catalog.ArchiveCopy)
		copies.POST("/:id/restore", handlers.Catalog.RestoreCopy)
	}

	acquisitions := api.Group("/acquisitions", staff)
	{
		acquisitions.POST("", handlers.Acquisition.Request)
		acquisitions.GET("", handlers.Acquisition.List)
		acquisitions.GET("/ref/:reference_no", handlers.Acquisition.GetByReferenceNo)
		acquisitions.GET("/:id", handlers.Acquisition.Get)
		acquisitions.POST("/:id/approve", admin, handlers.Acquisition.Approve)
		acquisitions.POST("/:id/reject", admin, handlers.Acquisition.Reject)
		acquisitions.POST("/:id/delivered", handlers.Acquisition.MarkDelivered)
		acquisitions.POST("/:id/checked", handlers.Acquisition.MarkChecked)
		acquisitions.POST("/:id/catalogue", handlers.Acquisition.Catalogue)
		acquisitions.GET("/:id/payments", handlers.Acquisition.ListPayments)
	}

	vendors := api.Group("/vendors", staff)
	{
		vendors.POST("", handlers.Acquisition.RegisterVendor)
		vendors.GET("", handlers.Acquisition.ListVendors)
	}

	api.GET("/reports/lending", staff, handlers.Report.LendingSummary)
	api.GET("/audit", admin, handlers.Audit.List)

	return engine
}
