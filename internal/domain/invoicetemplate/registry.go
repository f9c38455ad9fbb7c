package invoicetemplate

import (
	"slices"
	"sort"
)

// DefaultID plantilla canónica usada cuando el id solicitado no existe.
const DefaultID = 1

// CompactID plantilla "Compact Professional": recibe una hoja de estilos propia,
// más densa, pensada para que la factura quepa en menos páginas.
const CompactID = 4

// registry catálogo inmutable; se llena una sola vez en la inicialización del paquete.
var registry = func() map[int]Config {
	list := []Config{
		{
			ID:          1,
			Name:        "Classic Blue",
			Description: "Diseño limpio y atemporal con encabezado alineado a la izquierda.",
			Category:    CategoryBasic,
			Colors:      Colors{Primary: "#1e40af", Secondary: "#3b82f6", Accent: "#dbeafe"},
			Layout:      LayoutLeft,
			Features:    []string{"Professional header", "Clean item table", "Totals summary"},
		},
		{
			ID:          2,
			Name:        "Minimal Center",
			Description: "Encabezado centrado y tipografía ligera.",
			Category:    CategoryBasic,
			Colors:      Colors{Primary: "#111827", Secondary: "#6b7280", Accent: "#f3f4f6"},
			Layout:      LayoutCenter,
			Features:    []string{"Centered header", "Minimal borders", "Monochrome palette"},
		},
		{
			ID:          3,
			Name:        "Corporate Right",
			Description: "Datos de la empresa alineados a la derecha, ideal para membretes.",
			Category:    CategoryBasic,
			Colors:      Colors{Primary: "#065f46", Secondary: "#10b981", Accent: "#d1fae5"},
			Layout:      LayoutRight,
			Features:    []string{"Right aligned header", "Letterhead friendly", "Bordered table"},
		},
		{
			ID:          CompactID,
			Name:        "Compact Professional",
			Description: "Versión compacta optimizada para impresión en una sola página.",
			Category:    CategoryBasic,
			Colors:      Colors{Primary: "#374151", Secondary: "#4b5563", Accent: "#e5e7eb"},
			Layout:      LayoutLeft,
			Features:    []string{"Dense layout", "Print optimized", "Small typography"},
			Positioning: &Positioning{
				HeaderStyle:   "compact",
				LogoPosition:  "left",
				TotalPosition: "right",
				ItemsLayout:   "dense",
			},
		},
		{
			ID:          5,
			Name:        "Fresh Orange",
			Description: "Acentos cálidos para negocios creativos.",
			Category:    CategoryBasic,
			Colors:      Colors{Primary: "#c2410c", Secondary: "#f97316", Accent: "#ffedd5"},
			Layout:      LayoutLeft,
			Features:    []string{"Warm palette", "Rounded totals box", "Striped rows"},
		},
		{
			ID:          6,
			Name:        "Executive Gold",
			Description: "Encabezado oscuro con detalles dorados para servicios profesionales.",
			Category:    CategoryPremium,
			Colors:      Colors{Primary: "#1f2937", Secondary: "#b45309", Accent: "#fef3c7", Background: "#fffbeb"},
			Layout:      LayoutExecutive,
			Gradient:    "linear-gradient(135deg, #1f2937 0%, #374151 100%)",
			Features:    []string{"Executive banner", "Gold accents", "Signature area"},
			Positioning: &Positioning{
				HeaderStyle:   "banner",
				LogoPosition:  "left",
				TotalPosition: "right",
				ItemsLayout:   "table",
			},
		},
		{
			ID:          7,
			Name:        "Slate Sidebar",
			Description: "Barra lateral con los datos del emisor y del cliente.",
			Category:    CategoryPremium,
			Colors:      Colors{Primary: "#334155", Secondary: "#64748b", Accent: "#e2e8f0"},
			Layout:      LayoutSidebar,
			Gradient:    "linear-gradient(180deg, #334155 0%, #1e293b 100%)",
			Features:    []string{"Sidebar details", "Vertical rhythm", "Highlighted balance"},
			Positioning: &Positioning{
				HeaderStyle:   "sidebar",
				LogoPosition:  "sidebar",
				TotalPosition: "bottom",
				ItemsLayout:   "table",
			},
		},
		{
			ID:          8,
			Name:        "Split Horizon",
			Description: "Página dividida en dos columnas: emisor y destinatario.",
			Category:    CategoryPremium,
			Colors:      Colors{Primary: "#0f766e", Secondary: "#14b8a6", Accent: "#ccfbf1"},
			Layout:      LayoutSplit,
			Gradient:    "linear-gradient(90deg, #0f766e 0%, #14b8a6 100%)",
			Features:    []string{"Two column header", "Split addresses", "Accent totals"},
		},
		{
			ID:          9,
			Name:        "Modern Gradient",
			Description: "Tarjetas y degradado vibrante para marcas modernas.",
			Category:    CategoryPremium,
			Colors:      Colors{Primary: "#7c3aed", Secondary: "#db2777", Accent: "#f5f3ff"},
			Layout:      LayoutModern,
			Gradient:    "linear-gradient(135deg, #7c3aed 0%, #db2777 100%)",
			Features:    []string{"Gradient hero", "Card sections", "Modern typography"},
		},
		{
			ID:          10,
			Name:        "Royal Center",
			Description: "Plantilla premium con la disposición centrada clásica.",
			Category:    CategoryPremium,
			Colors:      Colors{Primary: "#4c1d95", Secondary: "#8b5cf6", Accent: "#ede9fe"},
			Layout:      LayoutCenter,
			Gradient:    "linear-gradient(135deg, #4c1d95 0%, #8b5cf6 100%)",
			Features:    []string{"Centered crest", "Premium palette", "Double rule borders"},
		},
		{
			ID:          11,
			Name:        "Midnight Executive",
			Description: "Variante nocturna del diseño ejecutivo.",
			Category:    CategoryPremium,
			Colors:      Colors{Primary: "#0f172a", Secondary: "#38bdf8", Accent: "#e0f2fe", Background: "#f8fafc"},
			Layout:      LayoutExecutive,
			Gradient:    "linear-gradient(135deg, #0f172a 0%, #1e3a8a 100%)",
			Features:    []string{"Executive banner", "Cool accents", "Signature area"},
		},
		{
			ID:          12,
			Name:        "Ocean Sidebar",
			Description: "Barra lateral en tonos marinos.",
			Category:    CategoryPremium,
			Colors:      Colors{Primary: "#075985", Secondary: "#0ea5e9", Accent: "#e0f2fe"},
			Layout:      LayoutSidebar,
			Gradient:    "linear-gradient(180deg, #075985 0%, #0c4a6e 100%)",
			Features:    []string{"Sidebar details", "Ocean palette", "Highlighted balance"},
		},
	}

	m := make(map[int]Config, len(list))
	for _, c := range list {
		m[c.ID] = c
	}
	return m
}()

// Get devuelve la plantilla registrada con ese id o, si no existe, la plantilla por
// defecto (id 1). Nunca falla y siempre devuelve una configuración válida.
func Get(id int) Config {
	if c, ok := registry[id]; ok {
		return c.clone()
	}
	return registry[DefaultID].clone()
}

// Default devuelve la plantilla canónica.
func Default() Config { return Get(DefaultID) }

// Exists indica si el id está registrado.
func Exists(id int) bool {
	_, ok := registry[id]
	return ok
}

// All devuelve el catálogo completo ordenado por id.
func All() []Config {
	ids := make([]int, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]Config, 0, len(ids))
	for _, id := range ids {
		out = append(out, registry[id].clone())
	}
	return out
}

// ByCategory filtra el catálogo por categoría.
func ByCategory(cat Category) []Config {
	return slices.DeleteFunc(All(), func(c Config) bool { return c.Category != cat })
}
