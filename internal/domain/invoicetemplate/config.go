// Package invoicetemplate contiene el catálogo estático de plantillas de factura.
//
// El catálogo se construye una sola vez al iniciar el proceso y no expone ninguna
// API de escritura: Get devuelve copias, de modo que ningún llamador puede alterar
// la configuración registrada.
package invoicetemplate

import "slices"

// Category agrupa las plantillas por plan.
type Category string

const (
	CategoryBasic   Category = "basic"
	CategoryPremium Category = "premium"
)

// Layout es la disposición visual declarada por la plantilla.
type Layout string

const (
	LayoutLeft      Layout = "left"
	LayoutCenter    Layout = "center"
	LayoutRight     Layout = "right"
	LayoutSplit     Layout = "split"
	LayoutModern    Layout = "modern"
	LayoutExecutive Layout = "executive"
	LayoutSidebar   Layout = "sidebar"
)

// Colors paleta de la plantilla en formato #rrggbb.
type Colors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background,omitempty"`
}

// Positioning ubicación de bloques dentro del documento (opcional).
type Positioning struct {
	HeaderStyle   string `json:"header_style"`
	LogoPosition  string `json:"logo_position"`
	TotalPosition string `json:"total_position"`
	ItemsLayout   string `json:"items_layout"`
}

// Config configuración visual de una plantilla. Inmutable una vez registrada.
type Config struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    Category     `json:"category"`
	Colors      Colors       `json:"colors"`
	Layout      Layout       `json:"layout"`
	Gradient    string       `json:"gradient,omitempty"`
	Features    []string     `json:"features"`
	Positioning *Positioning `json:"positioning,omitempty"`
}

// IsPremium indica si la plantilla pertenece al plan premium.
func (c Config) IsPremium() bool { return c.Category == CategoryPremium }

// clone devuelve una copia profunda (Features y Positioning incluidos).
func (c Config) clone() Config {
	out := c
	out.Features = slices.Clone(c.Features)
	if c.Positioning != nil {
		p := *c.Positioning
		out.Positioning = &p
	}
	return out
}
