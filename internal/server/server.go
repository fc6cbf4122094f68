package server

import (
	"order-backoffice/internal/handler"
	authmw "order-backoffice/internal/middleware"
	"order-backoffice/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	echo            *echo.Echo
	jwtSecret       string
	paymentHandler  *handler.PaymentHandler
	catalogHandler  *handler.CatalogHandler
	customerHandler *handler.CustomerHandler
}

func NewServer(
	jwtSecret string,
	confirmationService service.ConfirmationService,
	catalogService service.CatalogService,
	crmService service.CRMService,
	rdb *redis.Client,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		jwtSecret:       jwtSecret,
		paymentHandler:  handler.NewPaymentHandler(confirmationService, rdb),
		catalogHandler:  handler.NewCatalogHandler(catalogService),
		customerHandler: handler.NewCustomerHandler(crmService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	authed := api.Group("", authmw.Auth(s.jwtSecret))

	// -------- orders / payments --------
	orders := authed.Group("/orders")
	orders.POST("", s.paymentHandler.CreateOrder, authmw.RequireRole(authmw.RoleAdmin, authmw.RoleSales))
	orders.GET("/:id/payment-state", s.paymentHandler.GetPaymentState)
	orders.POST("/:id/confirm-payment", s.paymentHandler.ConfirmPayment)

	payments := authed.Group("/payments", authmw.RequireRole(authmw.RoleAdmin, authmw.RoleSales))
	payments.POST("/:recordID/review", s.paymentHandler.ReviewPayment)

	// -------- catalog --------
	products := authed.Group("/products")
	products.GET("", s.catalogHandler.ListProducts)
	products.POST("", s.catalogHandler.SaveProduct, authmw.RequireRole(authmw.RoleAdmin))
	products.POST("/:id/image", s.catalogHandler.AttachImage, authmw.RequireRole(authmw.RoleAdmin))

	// -------- crm / broadcast --------
	customers := authed.Group("/customers", authmw.RequireRole(authmw.RoleAdmin, authmw.RoleSales))
	customers.GET("", s.customerHandler.ListCustomers)
	customers.POST("", s.customerHandler.CreateCustomer)
	customers.POST("/:id/follow-up", s.customerHandler.RecordFollowUp)

	authed.POST("/broadcast", s.customerHandler.Broadcast, authmw.RequireRole(authmw.RoleAdmin, authmw.RoleSales))
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
