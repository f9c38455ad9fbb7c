package invoicetemplate

// Variant es la disposición estructural del markup. Cada variante tiene exactamente
// un constructor de HTML; Variants lista todas para que el generador pueda comprobar
// que ninguna quedó sin manejar.
type Variant int

const (
	VariantStandard Variant = iota
	VariantExecutive
	VariantSidebar
	VariantSplit
	VariantModern
)

// Variants todas las variantes conocidas.
var Variants = []Variant{
	VariantStandard,
	VariantExecutive,
	VariantSidebar,
	VariantSplit,
	VariantModern,
}

// String nombre estable de la variante (usado como marcador data-layout en el HTML).
func (v Variant) String() string {
	switch v {
	case VariantExecutive:
		return "executive"
	case VariantSidebar:
		return "sidebar"
	case VariantSplit:
		return "split"
	case VariantModern:
		return "modern"
	default:
		return "standard"
	}
}

// premiumVariants layouts que tienen constructor propio cuando la plantilla es premium.
var premiumVariants = map[Layout]Variant{
	LayoutExecutive: VariantExecutive,
	LayoutSidebar:   VariantSidebar,
	LayoutSplit:     VariantSplit,
	LayoutModern:    VariantModern,
}

// VariantOf resuelve la variante de una plantilla: solo las premium con layout
// executive, sidebar, split o modern usan un constructor propio; el resto usa el estándar.
func VariantOf(c Config) Variant {
	if !c.IsPremium() {
		return VariantStandard
	}
	if v, ok := premiumVariants[c.Layout]; ok {
		return v
	}
	return VariantStandard
}
