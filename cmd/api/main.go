package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lunitaval/ventas-api/internal/application/auth"
	"github.com/lunitaval/ventas-api/internal/application/customers"
	"github.com/lunitaval/ventas-api/internal/application/delivery"
	"github.com/lunitaval/ventas-api/internal/application/labels"
	"github.com/lunitaval/ventas-api/internal/application/reports"
	"github.com/lunitaval/ventas-api/internal/application/sales"
	infrapdf "github.com/lunitaval/ventas-api/internal/infrastructure/pdf"
	"github.com/lunitaval/ventas-api/internal/infrastructure/postgres"
	httpRouter "github.com/lunitaval/ventas-api/internal/interfaces/http"
	"github.com/lunitaval/ventas-api/pkg/config"
	"github.com/lunitaval/ventas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	loc, err := cfg.Business.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria del negocio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	reportsRepo := postgres.NewReportsRepository(pool, cfg.Business.TimeZone)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	saleUC := sales.NewUseCase(saleRepo, txRunner, loc, cfg.Business.PageSize)
	customerUC := customers.NewUseCase(customerRepo, saleRepo, txRunner, loc, cfg.Business.PageSize)
	tracker := delivery.NewTracker(saleRepo, txRunner, loc, delivery.Config{
		RetiroOverdueDays: cfg.Business.RetiroOverdueDays,
		CorreoOverdueDays: cfg.Business.CorreoOverdueDays,
		ChangeSLAHours:    cfg.Business.ChangeSLAHours,
	})
	reportsUC := reports.NewUseCase(reportsRepo, saleRepo, loc)

	labelGenerator := infrapdf.NewMarotoLabelGenerator(infrapdf.ShopInfo{
		Name:  cfg.Shop.Name,
		Phone: cfg.Shop.Phone,
		Email: cfg.Shop.Email,
	})
	labelUC := labels.NewUseCase(saleRepo, labelGenerator, loc, cfg.Business.LabelBatchMax)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CustomerUC: customerUC,
		SaleUC:     saleUC,
		Tracker:    tracker,
		ReportsUC:  reportsUC,
		LabelUC:    labelUC,
		JWTSecret:  cfg.JWT.Secret,
		Location:   loc,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
