package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/invoice-docs/internal/application/billing"
	"github.com/jhoicas/invoice-docs/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Selector  *billing.TemplateSelector
	Loader    *billing.DocumentLoader
	PDF       *billing.PDFUseCase
	Bulk      *billing.BulkExportUseCase
	Metrics   *metrics.Recorder // nil = sin /metrics
	DB        Pinger            // nil = health sin base de datos
	Service   string
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health(deps.Service, deps.DB))
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	documentHandler := NewDocumentHandler(deps.Loader, deps.PDF, deps.Bulk)

	// Vista pública (destino del QR, sin token)
	app.Get("/public/invoices/:id", documentHandler.Public)

	// Rutas protegidas (requieren Bearer Token)
	protected := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Plantillas
	templateHandler := NewTemplateHandler(deps.Selector)
	templates := protected.Group("/templates")
	templates.Get("/", templateHandler.List)
	templates.Get("/selected", templateHandler.Selected)
	templates.Get("/:id", templateHandler.Get)
	protected.Put("/settings/template", templateHandler.Save)

	// Documentos de factura
	invoices := protected.Group("/invoices")
	invoices.Post("/export", documentHandler.Export)
	invoices.Get("/:id/html", documentHandler.HTML)
	invoices.Get("/:id/pdf", documentHandler.PDF)
	protected.Post("/documents/render", documentHandler.Render)
}
