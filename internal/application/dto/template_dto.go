package dto

import "github.com/jhoicas/invoice-docs/internal/domain/invoicetemplate"

// TemplateResponse plantilla del catálogo en respuestas.
type TemplateResponse struct {
	invoicetemplate.Config
	Variant string `json:"variant"`
	Premium bool   `json:"premium"`
}

// NewTemplateResponse arma la respuesta a partir de la configuración.
func NewTemplateResponse(cfg invoicetemplate.Config) TemplateResponse {
	return TemplateResponse{
		Config:  cfg,
		Variant: invoicetemplate.VariantOf(cfg).String(),
		Premium: cfg.IsPremium(),
	}
}

// TemplateListResponse cuerpo de GET /api/templates.
type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
	Total     int                `json:"total"`
}

// SaveTemplateRequest body para PUT /api/settings/template.
type SaveTemplateRequest struct {
	TemplateID int `json:"template_id"`
}
