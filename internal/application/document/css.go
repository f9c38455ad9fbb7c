package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/invoice-docs/internal/domain/invoicetemplate"
)

var (
	hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	// Solo degradados con colores, porcentajes, ángulos y palabras clave; sin ; { } < >.
	gradientPattern = regexp.MustCompile(`^(linear|radial)-gradient\([#0-9A-Za-z%.,\s()-]+\)$`)
)

// borderStyles sobrescrituras de borde de tabla por id de plantilla.
var borderStyles = map[int]string{
	2:  "1px solid var(--accent)",
	3:  "2px solid var(--primary)",
	5:  "1px dashed var(--secondary)",
	10: "3px double var(--primary)",
}

// titleSizes tamaño del título "INVOICE" por id de plantilla.
var titleSizes = map[int]string{
	2:  "40px",
	3:  "30px",
	6:  "38px",
	9:  "42px",
	10: "44px",
	11: "38px",
}

// GenerateTemplateCSS produce la hoja de estilos completa de una plantilla. Es una
// función pura de la configuración: colores, degradado e id.
func GenerateTemplateCSS(cfg invoicetemplate.Config) string {
	var b strings.Builder
	writeVariables(&b, cfg)

	if cfg.ID == invoicetemplate.CompactID {
		b.WriteString(compactCSS)
		return b.String()
	}

	b.WriteString(baseCSS)
	b.WriteString(alignmentCSS(cfg.Layout))
	b.WriteString(variantCSS[invoicetemplate.VariantOf(cfg)])
	writeOverrides(&b, cfg.ID)
	b.WriteString(printCSS)
	return b.String()
}

// writeVariables emite las variables CSS; colores inválidos se reemplazan por los
// de la plantilla por defecto y un degradado inválido por el color primario plano.
func writeVariables(b *strings.Builder, cfg invoicetemplate.Config) {
	def := invoicetemplate.Default().Colors
	primary := colorOr(cfg.Colors.Primary, def.Primary)
	secondary := colorOr(cfg.Colors.Secondary, def.Secondary)
	accent := colorOr(cfg.Colors.Accent, def.Accent)
	background := colorOr(cfg.Colors.Background, "#ffffff")

	gradient := primary
	if g := strings.TrimSpace(cfg.Gradient); g != "" && gradientPattern.MatchString(g) {
		gradient = g
	}

	fmt.Fprintf(b, ":root {\n  --primary: %s;\n  --secondary: %s;\n  --accent: %s;\n  --background: %s;\n  --gradient: %s;\n}\n",
		primary, secondary, accent, background, gradient)
}

func writeOverrides(b *strings.Builder, id int) {
	if border, ok := borderStyles[id]; ok {
		fmt.Fprintf(b, ".items-table th, .items-table td { border-bottom: %s; }\n.totals { border-top: %s; }\n", border, border)
	}
	if size, ok := titleSizes[id]; ok {
		fmt.Fprintf(b, ".invoice-title { font-size: %s; }\n", size)
	}
}

func colorOr(c, fallback string) string {
	c = strings.TrimSpace(c)
	if hexColorPattern.MatchString(c) {
		return strings.ToLower(c)
	}
	return fallback
}

func alignmentCSS(l invoicetemplate.Layout) string {
	switch l {
	case invoicetemplate.LayoutCenter:
		return ".header { flex-direction: column; align-items: center; text-align: center; }\n.header .meta { text-align: center; }\n"
	case invoicetemplate.LayoutRight:
		return ".header { flex-direction: row-reverse; }\n.header .brand { text-align: right; }\n.header .meta { text-align: left; }\n"
	default:
		return ""
	}
}

const baseCSS = `* { box-sizing: border-box; margin: 0; padding: 0; }
html, body { background: #ffffff; }
body {
  font-family: "Inter", "Helvetica Neue", Arial, sans-serif;
  font-size: 13px;
  line-height: 1.5;
  color: #1f2937;
  -webkit-print-color-adjust: exact;
  print-color-adjust: exact;
}
.invoice-container {
  position: relative;
  width: 794px;
  min-height: 1123px;
  margin: 0 auto;
  padding: 48px;
  background: var(--background);
}
.header {
  display: flex;
  justify-content: space-between;
  align-items: flex-start;
  gap: 24px;
  padding-bottom: 20px;
  margin-bottom: 28px;
  border-bottom: 3px solid var(--primary);
}
.brand img.company-logo { max-height: 64px; max-width: 200px; margin-bottom: 8px; }
.invoice-title { font-size: 34px; font-weight: 800; letter-spacing: 2px; color: var(--primary); }
.invoice-number { font-size: 14px; color: var(--secondary); font-weight: 600; }
.meta { text-align: right; font-size: 12px; }
.meta .label { color: #6b7280; text-transform: uppercase; letter-spacing: 0.05em; font-size: 10px; }
.status-badge {
  display: inline-block;
  margin-top: 6px;
  padding: 2px 10px;
  border-radius: 999px;
  font-size: 11px;
  font-weight: 600;
  background: var(--accent);
  color: var(--primary);
}
.status-paid { background: #d1fae5; color: #065f46; }
.status-overdue { background: #fee2e2; color: #991b1b; }
.parties { display: flex; justify-content: space-between; gap: 32px; margin-bottom: 28px; }
.party { flex: 1; }
.party h3 {
  font-size: 11px;
  text-transform: uppercase;
  letter-spacing: 0.08em;
  color: var(--secondary);
  margin-bottom: 6px;
}
.party .name { font-size: 15px; font-weight: 700; color: #111827; }
.party .line { color: #4b5563; }
.items-table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
.items-table th {
  background: var(--primary);
  color: #ffffff;
  text-align: left;
  font-size: 11px;
  text-transform: uppercase;
  letter-spacing: 0.05em;
  padding: 10px 12px;
}
.items-table td { padding: 10px 12px; border-bottom: 1px solid #e5e7eb; vertical-align: top; }
.items-table tr:nth-child(even) td { background: var(--accent); }
.items-table .num { text-align: right; white-space: nowrap; }
.item-name { font-weight: 600; }
.item-description { color: #6b7280; font-size: 12px; }
.totals-wrapper { display: flex; justify-content: flex-end; }
.totals { width: 320px; padding-top: 8px; }
.total-row { display: flex; justify-content: space-between; padding: 6px 0; }
.total-row.grand-total {
  margin-top: 6px;
  padding: 10px 12px;
  font-size: 16px;
  font-weight: 800;
  color: #ffffff;
  background: var(--primary);
}
.total-row.discount .total-value { color: #b91c1c; }
.total-row.balance-due { font-weight: 700; color: var(--primary); border-top: 1px solid #e5e7eb; }
.overpaid-note { font-size: 11px; color: #b45309; text-align: right; }
.notes { margin-top: 32px; display: flex; gap: 24px; }
.notes section { flex: 1; }
.notes h4 { font-size: 11px; text-transform: uppercase; color: var(--secondary); margin-bottom: 4px; }
.notes p { white-space: pre-line; color: #4b5563; }
.footer {
  margin-top: 40px;
  padding-top: 16px;
  border-top: 1px solid #e5e7eb;
  display: flex;
  justify-content: space-between;
  align-items: center;
  font-size: 11px;
  color: #6b7280;
}
.footer .qr-code { width: 96px; height: 96px; }
.watermark { position: absolute; right: 48px; bottom: 24px; opacity: 0.35; }
.watermark img { max-height: 28px; }
.powered-by { font-size: 10px; color: #9ca3af; }
`

var variantCSS = map[invoicetemplate.Variant]string{
	invoicetemplate.VariantStandard: "",
	invoicetemplate.VariantExecutive: `.executive-banner {
  margin: -48px -48px 32px;
  padding: 40px 48px;
  background: var(--gradient);
  color: #ffffff;
  display: flex;
  justify-content: space-between;
  align-items: center;
}
.executive-banner .invoice-title { color: #ffffff; }
.executive-banner .invoice-number, .executive-banner .meta .label { color: var(--accent); }
.executive-rule { height: 4px; background: var(--secondary); margin-bottom: 28px; }
.signature { margin-top: 48px; width: 220px; border-top: 1px solid #9ca3af; padding-top: 6px; font-size: 11px; color: #6b7280; }
`,
	invoicetemplate.VariantSidebar: `.invoice-container.sidebar-layout { display: flex; padding: 0; }
.sidebar {
  width: 250px;
  min-height: 1123px;
  padding: 40px 24px;
  background: var(--gradient);
  color: #ffffff;
}
.sidebar .party h3 { color: var(--accent); }
.sidebar .party .name, .sidebar .party .line { color: #ffffff; }
.sidebar .party { margin-bottom: 28px; }
.sidebar img.company-logo { max-width: 180px; margin-bottom: 24px; background: #ffffff; padding: 6px; border-radius: 4px; }
.sidebar-amount { margin-top: 32px; }
.sidebar-amount .label { font-size: 10px; text-transform: uppercase; color: var(--accent); }
.sidebar-amount .value { font-size: 22px; font-weight: 800; }
.main-content { flex: 1; padding: 40px 36px; }
`,
	invoicetemplate.VariantSplit: `.split-header { display: grid; grid-template-columns: 1fr 1fr; margin: -48px -48px 32px; }
.split-left { padding: 40px 32px 32px 48px; background: var(--gradient); color: #ffffff; }
.split-left .invoice-title { color: #ffffff; }
.split-left .invoice-number { color: var(--accent); }
.split-right { padding: 40px 48px 32px 32px; background: var(--accent); }
.split-parties { display: grid; grid-template-columns: 1fr 1fr; gap: 0; margin-bottom: 28px; }
.split-parties .party { padding: 16px; border-left: 4px solid var(--secondary); }
`,
	invoicetemplate.VariantModern: `.modern-hero {
  margin: -48px -48px 32px;
  padding: 48px;
  background: var(--gradient);
  color: #ffffff;
  border-radius: 0 0 32px 32px;
}
.modern-hero .invoice-title { color: #ffffff; font-weight: 300; letter-spacing: 6px; }
.modern-hero .invoice-number { color: #ffffff; opacity: 0.85; }
.cards { display: grid; grid-template-columns: 1fr 1fr; gap: 16px; margin-bottom: 28px; }
.card { padding: 16px 20px; border-radius: 12px; background: var(--accent); }
.modern-items .items-table th { background: transparent; color: var(--primary); border-bottom: 2px solid var(--primary); }
.modern-items .items-table tr:nth-child(even) td { background: transparent; }
.amount-due-card { padding: 16px 20px; border-radius: 12px; background: var(--gradient); color: #ffffff; text-align: right; }
.amount-due-card .value { font-size: 24px; font-weight: 800; }
`,
}

const printCSS = `@page { size: A4; margin: 0; }
@media print {
  body { font-size: 11px; }
  .invoice-container { width: 100%; min-height: auto; padding: 24px 28px; }
  .header { margin-bottom: 16px; padding-bottom: 12px; }
  .parties { margin-bottom: 16px; }
  .items-table th, .items-table td { padding: 6px 8px; }
  .items-table tr { page-break-inside: avoid; }
  .totals-wrapper, .notes { page-break-inside: avoid; }
  .footer { margin-top: 20px; }
}
`

// compactCSS hoja de estilos densa de "Compact Professional": tipografía y
// espaciados reducidos para que la factura pagine en el menor número de hojas.
const compactCSS = `* { box-sizing: border-box; margin: 0; padding: 0; }
body {
  font-family: "Helvetica Neue", Arial, sans-serif;
  font-size: 10px;
  line-height: 1.3;
  color: #111827;
  background: #ffffff;
  -webkit-print-color-adjust: exact;
  print-color-adjust: exact;
}
.invoice-container { position: relative; width: 794px; margin: 0 auto; padding: 24px 28px; background: var(--background); }
.header { display: flex; justify-content: space-between; align-items: flex-start; padding-bottom: 8px; margin-bottom: 10px; border-bottom: 1px solid var(--primary); }
.brand img.company-logo { max-height: 36px; max-width: 140px; margin-bottom: 4px; }
.invoice-title { font-size: 20px; font-weight: 700; letter-spacing: 1px; color: var(--primary); }
.invoice-number { font-size: 11px; color: var(--secondary); }
.meta { text-align: right; }
.meta .label { color: #6b7280; font-size: 8px; text-transform: uppercase; }
.status-badge { display: inline-block; padding: 0 6px; font-size: 9px; border: 1px solid var(--secondary); }
.parties { display: flex; gap: 16px; margin-bottom: 10px; }
.party { flex: 1; }
.party h3 { font-size: 8px; text-transform: uppercase; color: var(--secondary); margin-bottom: 2px; }
.party .name { font-size: 11px; font-weight: 700; }
.items-table { width: 100%; border-collapse: collapse; margin-bottom: 8px; }
.items-table th { text-align: left; font-size: 8px; text-transform: uppercase; padding: 4px 6px; border-bottom: 1px solid var(--primary); color: var(--primary); }
.items-table td { padding: 3px 6px; border-bottom: 1px solid var(--accent); vertical-align: top; }
.items-table tr { page-break-inside: avoid; }
.items-table .num { text-align: right; white-space: nowrap; }
.item-name { font-weight: 600; }
.item-description { color: #6b7280; font-size: 9px; }
.totals-wrapper { display: flex; justify-content: flex-end; page-break-inside: avoid; }
.totals { width: 220px; }
.total-row { display: flex; justify-content: space-between; padding: 2px 0; }
.total-row.grand-total { font-size: 12px; font-weight: 700; border-top: 1px solid var(--primary); margin-top: 2px; padding-top: 4px; }
.total-row.balance-due { font-weight: 700; }
.overpaid-note { font-size: 8px; color: #b45309; text-align: right; }
.notes { margin-top: 10px; display: flex; gap: 12px; page-break-inside: avoid; }
.notes section { flex: 1; }
.notes h4 { font-size: 8px; text-transform: uppercase; color: var(--secondary); }
.notes p { white-space: pre-line; }
.footer { margin-top: 12px; padding-top: 6px; border-top: 1px solid var(--accent); display: flex; justify-content: space-between; align-items: center; font-size: 8px; color: #6b7280; }
.footer .qr-code { width: 64px; height: 64px; }
.watermark { position: absolute; right: 28px; bottom: 8px; opacity: 0.3; }
.watermark img { max-height: 18px; }
.powered-by { font-size: 8px; color: #9ca3af; }
@page { size: A4; margin: 8mm; }
@media print {
  body { font-size: 9px; }
  .invoice-container { width: 100%; padding: 0; }
  .header { margin-bottom: 6px; }
  .items-table td { padding: 2px 4px; }
}
`
