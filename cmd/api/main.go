package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/invoice-docs/internal/application/billing"
	"github.com/jhoicas/invoice-docs/internal/application/session"
	"github.com/jhoicas/invoice-docs/internal/infrastructure/archive"
	"github.com/jhoicas/invoice-docs/internal/infrastructure/assets"
	"github.com/jhoicas/invoice-docs/internal/infrastructure/chrome"
	"github.com/jhoicas/invoice-docs/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/invoice-docs/internal/infrastructure/pdf"
	"github.com/jhoicas/invoice-docs/internal/infrastructure/postgres"
	"github.com/jhoicas/invoice-docs/internal/infrastructure/qr"
	httpRouter "github.com/jhoicas/invoice-docs/internal/interfaces/http"
	"github.com/jhoicas/invoice-docs/pkg/config"
	"github.com/jhoicas/invoice-docs/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: las rutas /api rechazarán todos los tokens")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)

	// Pipeline de exportación: HTML → Chrome headless → PNG → PDF
	rasterizer := chrome.NewRasterizer(chrome.Options{
		ExecPath:    cfg.Render.ChromePath,
		Scale:       cfg.Render.Scale,
		MaxTabs:     cfg.Render.MaxTabs,
		LoadTimeout: cfg.Render.LoadTimeout,
	}, log.Component("chrome"))
	defer rasterizer.Close()

	recorder := metrics.NewRecorder("invoicedocs")
	selector := billing.NewTemplateSelector(session.ContextProvider{}, settingsRepo, log.Component("templates"))
	loader := billing.NewDocumentLoader(invoiceRepo, clientRepo, companyRepo, settingsRepo)
	pdfUC := billing.NewPDFUseCase(
		selector,
		rasterizer,
		infrapdf.NewMarotoComposer(),
		qr.NewGenerator(qr.DefaultSize),
		assets.NewFetcher(&http.Client{}, cfg.Render.AssetTimeout),
		recorder,
		billing.PDFOptions{
			PublicBaseURL: cfg.HTTP.PublicBaseURL,
			BrandName:     cfg.Render.BrandName,
			BrandLogoURL:  cfg.Render.BrandLogoURL,
			Page:          billing.A4,
		},
		log.Component("pdf"),
	)
	bulkUC := billing.NewBulkExportUseCase(loader, pdfUC, archive.NewZipBuilder(), billing.BulkOptions{
		MaxInvoices: cfg.Export.BulkLimit,
		Concurrency: cfg.Export.BulkConcurrency,
	}, log.Component("bulk_export"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // la exportación masiva tarda
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestMetrics(recorder))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Invoice Docs API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Selector:  selector,
		Loader:    loader,
		PDF:       pdfUC,
		Bulk:      bulkUC,
		Metrics:   recorder,
		DB:        pool,
		Service:   cfg.App.Name,
		JWTSecret: cfg.JWT.Secret,
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
