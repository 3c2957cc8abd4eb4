package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/rentas-pro/internal/application/auth"
	"github.com/tu-usuario/rentas-pro/internal/application/billing"
	"github.com/tu-usuario/rentas-pro/internal/application/scheduler"
	"github.com/tu-usuario/rentas-pro/internal/application/usecase"
	"github.com/tu-usuario/rentas-pro/internal/infrastructure/notify"
	"github.com/tu-usuario/rentas-pro/internal/infrastructure/ocr"
	infrapdf "github.com/tu-usuario/rentas-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/rentas-pro/internal/infrastructure/postgres"
	httpiface "github.com/tu-usuario/rentas-pro/internal/interfaces/http"
	"github.com/tu-usuario/rentas-pro/pkg/config"
	"github.com/tu-usuario/rentas-pro/pkg/logger"
)

func main() {
	// Configuración
	cfg, err := config.Load()
	if err != nil {
		panic("error cargando configuración: " + err.Error())
	}

	// Logger estructurado
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
	log.Info().Str("env", cfg.App.Env).Str("app", cfg.App.Name).Msg("iniciando API")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	// Base de datos
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("error conectando a PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("conexión a PostgreSQL establecida")

	// Repositorios (sobre el pool; los casos de uso transaccionales usan TxRunner)
	agencyRepo := postgres.NewAgencyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	propertyRepo := postgres.NewPropertyRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	policyRepo := postgres.NewPolicyRepository(pool)
	extractedRepo := postgres.NewExtractedChargeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Infraestructura
	pdfGen := infrapdf.NewMarotoPDFGenerator()
	billExtractor := ocr.NewHTTPExtractor(cfg.OCR, log)
	defer billExtractor.Shutdown()
	reminderDispatcher := notify.NewLogReminderDispatcher(log)
	insurerReporter := notify.NewLogInsurerReporter(log)

	// Casos de uso
	authUC := auth.NewAuthUseCase(userRepo, agencyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	agencyUC := usecase.NewAgencyUseCase(agencyRepo)
	contactUC := usecase.NewContactUseCase(contactRepo)
	propertyUC := usecase.NewPropertyUseCase(propertyRepo, contactRepo)
	contractUC := usecase.NewContractUseCase(contractRepo, propertyRepo, contactRepo)
	policyUC := usecase.NewPolicyUseCase(policyRepo, contractRepo)

	activateUC := billing.NewActivateContractUseCase(txRunner)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, paymentRepo)
	reconcileUC := billing.NewReconcileUseCase(txRunner)
	paymentUC := billing.NewPaymentUseCase(txRunner)
	accrueUC := billing.NewAccrueLateFeeUseCase(txRunner, contractRepo)
	pdfUC := billing.NewInvoicePDFUseCase(invoiceRepo, contractRepo, contactRepo, agencyRepo, pdfGen)
	extractedUC := billing.NewExtractedChargeUseCase(txRunner, billExtractor, invoiceRepo, extractedRepo)

	// Scheduler de trabajos recurrentes (mora, recordatorios, reporte mensual)
	schedCtx, schedCancel := context.WithCancel(ctx)
	defer schedCancel()
	if cfg.Scheduler.Enabled {
		sched := scheduler.New(invoiceRepo, contractRepo, policyRepo, accrueUC, reminderDispatcher, insurerReporter, cfg.Scheduler, log)
		go sched.Start(schedCtx)
	} else {
		log.Info().Msg("scheduler deshabilitado por configuración")
	}

	// Servidor HTTP
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	app.Use(recover.New())
	app.Use(cors.New())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	httpiface.Router(app, httpiface.RouterDeps{
		AgencyUC:    agencyUC,
		ContactUC:   contactUC,
		PropertyUC:  propertyUC,
		ContractUC:  contractUC,
		PolicyUC:    policyUC,
		ActivateUC:  activateUC,
		InvoiceUC:   invoiceUC,
		ReconcileUC: reconcileUC,
		PaymentUC:   paymentUC,
		PDFUC:       pdfUC,
		ExtractedUC: extractedUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	// Arranque y apagado ordenado
	go func() {
		addr := cfg.HTTP.Addr()
		log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("error en el servidor HTTP")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor...")
	schedCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error en el apagado del servidor")
	}
	log.Info().Msg("servidor detenido")
}
