package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-docs/internal/application/billing"
	"github.com/jhoicas/invoice-docs/internal/application/dto"
	"github.com/jhoicas/invoice-docs/internal/domain/invoicetemplate"
)

// TemplateHandler catálogo de plantillas y selección del usuario (protegido).
type TemplateHandler struct {
	selector *billing.TemplateSelector
}

// NewTemplateHandler construye el handler.
func NewTemplateHandler(selector *billing.TemplateSelector) *TemplateHandler {
	return &TemplateHandler{selector: selector}
}

// List lista el catálogo; ?category=basic|premium filtra.
// GET /api/templates
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	var configs []invoicetemplate.Config
	switch cat := c.Query("category"); cat {
	case "":
		configs = invoicetemplate.All()
	case string(invoicetemplate.CategoryBasic), string(invoicetemplate.CategoryPremium):
		configs = invoicetemplate.ByCategory(invoicetemplate.Category(cat))
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "categoría inválida"})
	}

	out := dto.TemplateListResponse{Templates: make([]dto.TemplateResponse, 0, len(configs))}
	for _, cfg := range configs {
		out.Templates = append(out.Templates, dto.NewTemplateResponse(cfg))
	}
	out.Total = len(out.Templates)
	return c.JSON(out)
}

// Get devuelve una plantilla; un id desconocido devuelve la plantilla por defecto.
// GET /api/templates/:id
func (h *TemplateHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id numérico requerido"})
	}
	return c.JSON(dto.NewTemplateResponse(invoicetemplate.Get(id)))
}

// Selected plantilla elegida por el usuario del token. Nunca falla.
// GET /api/templates/selected
func (h *TemplateHandler) Selected(c *fiber.Ctx) error {
	return c.JSON(dto.NewTemplateResponse(h.selector.Selected(c.UserContext())))
}

// Save guarda la plantilla elegida.
// PUT /api/settings/template
func (h *TemplateHandler) Save(c *fiber.Ctx) error {
	if GetUserID(c) == "" {
		return unauthorized(c)
	}
	var in dto.SaveTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cfg, err := h.selector.Save(c.UserContext(), in.TemplateID)
	if err != nil {
		return writeError(c, err, "plantilla no encontrada")
	}
	return c.JSON(dto.NewTemplateResponse(cfg))
}
