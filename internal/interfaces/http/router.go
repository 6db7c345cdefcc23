package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lunitaval/ventas-api/internal/application/auth"
	"github.com/lunitaval/ventas-api/internal/application/customers"
	"github.com/lunitaval/ventas-api/internal/application/delivery"
	"github.com/lunitaval/ventas-api/internal/application/labels"
	"github.com/lunitaval/ventas-api/internal/application/reports"
	"github.com/lunitaval/ventas-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	CustomerUC *customers.UseCase
	SaleUC     *sales.UseCase
	Tracker    *delivery.Tracker
	ReportsUC  *reports.UseCase
	LabelUC    *labels.UseCase
	JWTSecret  string
	Location   *time.Location
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clientes
	customerGroup := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customerGroup.Get("/", customerHandler.List)
	customerGroup.Get("/search", customerHandler.Search)
	customerGroup.Post("/", customerHandler.Create)
	customerGroup.Get("/:id", customerHandler.Get)
	customerGroup.Put("/:id", customerHandler.Update)
	customerGroup.Delete("/:id", customerHandler.Delete)

	// Ventas
	saleGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.Location)
	saleGroup.Get("/", saleHandler.List)
	saleGroup.Get("/last", saleHandler.Last)
	saleGroup.Post("/", saleHandler.Create)
	saleGroup.Get("/:id", saleHandler.Get)
	saleGroup.Put("/:id", saleHandler.Update)
	saleGroup.Delete("/:id", saleHandler.Delete)
	saleGroup.Post("/:id/pay", saleHandler.MarkPaid)

	// Logística: retiros, correo y calendario de cadetería
	deliveryGroup := protected.Group("/delivery")
	deliveryHandler := NewDeliveryHandler(deps.Tracker, deps.Location)
	deliveryGroup.Get("/retiro/stats", deliveryHandler.RetiroStats)
	deliveryGroup.Get("/correo/stats", deliveryHandler.CorreoStats)
	deliveryGroup.Post("/retiro/:id/delivered", deliveryHandler.MarkDelivered)
	deliveryGroup.Post("/correo/:id/shipped", deliveryHandler.MarkShipped)
	deliveryGroup.Get("/shipments", deliveryHandler.Shipments)
	deliveryGroup.Put("/shipments/:id", deliveryHandler.UpdateShipment)

	// Cambios de mercadería
	changesGroup := protected.Group("/changes")
	changesHandler := NewChangesHandler(deps.Tracker)
	changesGroup.Get("/stats", changesHandler.Stats)
	changesGroup.Post("/:id/received", changesHandler.MarkReceived)

	// Reportes
	reportsGroup := protected.Group("/reports")
	reportsHandler := NewReportsHandler(deps.ReportsUC, deps.Tracker, deps.Location)
	reportsGroup.Get("/dashboard", reportsHandler.Dashboard)
	reportsGroup.Get("/summary", reportsHandler.Summary)
	reportsGroup.Get("/by-channel", reportsHandler.ByChannel)
	reportsGroup.Get("/by-delivery-type", reportsHandler.ByDeliveryType)
	reportsGroup.Get("/daily", reportsHandler.Daily)
	reportsGroup.Get("/top-customers", reportsHandler.TopCustomers)
	reportsGroup.Get("/compare", reportsHandler.Compare)
	reportsGroup.Get("/changes/trend", reportsHandler.ChangesTrend)

	// Etiquetas PDF
	labelGroup := protected.Group("/labels")
	labelHandler := NewLabelHandler(deps.LabelUC)
	labelGroup.Get("/sale/:id", labelHandler.ForSale)
	labelGroup.Post("/batch", labelHandler.ForBatch)
	labelGroup.Get("/shipments/:date", labelHandler.ForShippingDate)
}
