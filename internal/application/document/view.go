package document

import (
	"html/template"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/invoice-docs/internal/domain/currency"
	"github.com/jhoicas/invoice-docs/internal/domain/invoicetemplate"
)

const dateLayout = "Jan 2, 2006"

// Clases CSS de las filas de totales.
const (
	rowSubtotal = "subtotal"
	rowDiscount = "discount"
	rowTax      = "tax"
	rowShipping = "shipping"
	rowTotal    = "grand-total"
	rowPaid     = "paid"
	rowBalance  = "balance-due"
)

var safeImagePattern = regexp.MustCompile(`^(data:image/(png|jpeg|jpg|gif|webp|svg\+xml);base64,[A-Za-z0-9+/=]+|https?://[^\s"'<>]+)$`)

// partyView bloque de emisor/destinatario ya preparado para el template.
type partyView struct {
	Heading      string
	Name         string
	CompanyName  string
	AddressLines []string
	Email        string
	Phone        string
	Website      string
	TaxID        string
}

type itemView struct {
	Index       int
	ProductName string
	Description string
	Quantity    string
	Unit        string
	Rate        string
	Amount      string
}

type totalLine struct {
	Class string
	Label string
	Value string
}

// view modelo de presentación común a todos los constructores.
type view struct {
	Variant     string
	Template    invoicetemplate.Config
	CSS         template.CSS
	Title       string
	Number      string
	IssueDate   string
	DueDate     string
	Status      string
	StatusClass string
	Currency    string
	Company     partyView
	Client      partyView
	CompanyLogo template.URL
	Watermark   template.URL
	BrandName   string
	ShowBrand   bool
	QRCode      template.URL
	Items       []itemView
	Totals      []totalLine
	GrandTotal  totalLine
	Payments    []totalLine
	Overpaid    bool
	AmountDue   string
	Notes       string
	Terms       string
}

func newView(in Input, cfg invoicetemplate.Config, variant invoicetemplate.Variant) view {
	code := currency.Normalize(in.Invoice.Currency)
	v := view{
		Variant:     variant.String(),
		Template:    cfg,
		CSS:         template.CSS(GenerateTemplateCSS(cfg)),
		Title:       "INVOICE",
		Number:      in.Invoice.Number,
		IssueDate:   formatDate(in.Invoice.IssueDate),
		Status:      titleStatus(in.Invoice.Status),
		StatusClass: statusClass(in.Invoice.Status),
		Currency:    code,
		Company:     newPartyView("From", in.Company),
		Client:      newPartyView("Bill To", in.Client),
		CompanyLogo: safeImage(in.CompanyLogo),
		BrandName:   in.BrandName,
		QRCode:      safeImage(in.QRCode),
		Notes:       strings.TrimSpace(in.Invoice.Notes),
		Terms:       strings.TrimSpace(in.Invoice.Terms),
	}
	if in.Invoice.DueDate != nil {
		v.DueDate = formatDate(*in.Invoice.DueDate)
	}
	if in.ShowWatermark() {
		v.ShowBrand = true
		v.Watermark = safeImage(in.WatermarkLogo)
	}

	v.Items = make([]itemView, 0, len(in.Items))
	for i, it := range in.Items {
		v.Items = append(v.Items, itemView{
			Index:       i + 1,
			ProductName: it.ProductName,
			Description: it.Description,
			Quantity:    it.Quantity.String(),
			Unit:        it.Unit,
			Rate:        currency.Format(it.Rate, code),
			Amount:      currency.Format(it.Amount, code),
		})
	}

	t := in.Totals
	v.Totals = append(v.Totals, totalLine{rowSubtotal, "Subtotal:", currency.Format(t.Subtotal, code)})
	if t.HasDiscount() {
		v.Totals = append(v.Totals, totalLine{rowDiscount,
			"Discount (" + currency.FormatPercent(t.DiscountPercent) + "%):",
			"-" + currency.Format(t.DiscountAmount, code)})
	}
	if t.HasTax() {
		v.Totals = append(v.Totals, totalLine{rowTax,
			"Tax (" + currency.FormatPercent(t.TaxPercent) + "%):",
			currency.Format(t.TaxAmount, code)})
	}
	if t.HasShipping() {
		v.Totals = append(v.Totals, totalLine{rowShipping, "Shipping:", currency.Format(t.ShippingCharge, code)})
	}
	v.GrandTotal = totalLine{rowTotal, "Total:", currency.Format(t.Total, code)}

	// Con un pago registrado se muestran siempre pagado y saldo (0.00 si está saldada).
	if t.HasPayment() {
		v.Payments = []totalLine{
			{rowPaid, "Amount Paid:", currency.Format(t.PaidAmount, code)},
			{rowBalance, "Balance Due:", currency.Format(t.DisplayBalance(), code)},
		}
		v.Overpaid = t.Overpaid()
		v.AmountDue = currency.Format(t.DisplayBalance(), code)
	} else {
		v.AmountDue = currency.Format(t.Total, code)
	}
	return v
}

func newPartyView(heading string, p Party) partyView {
	return partyView{
		Heading:      heading,
		Name:         strings.TrimSpace(p.Name),
		CompanyName:  strings.TrimSpace(p.CompanyName),
		AddressLines: p.AddressLines(),
		Email:        strings.TrimSpace(p.Email),
		Phone:        strings.TrimSpace(p.Phone),
		Website:      strings.TrimSpace(p.Website),
		TaxID:        strings.TrimSpace(p.TaxID),
	}
}

// safeImage solo acepta data URI de imagen en base64 o URLs http(s); cualquier otra
// cosa se descarta y la imagen simplemente no se muestra.
func safeImage(src string) template.URL {
	src = strings.TrimSpace(src)
	if src == "" || !safeImagePattern.MatchString(src) {
		return ""
	}
	return template.URL(src)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// titleStatus "partially_paid" → "Partially Paid".
func titleStatus(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", " "))
	if s == "" {
		return ""
	}
	return cases.Title(language.English).String(s)
}

func statusClass(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "status-draft"
	}
	return "status-" + strings.ReplaceAll(s, "_", "-")
}
