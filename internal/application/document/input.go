// Package document genera la representación HTML (markup + CSS en línea) de una
// factura en el estilo de una plantilla del catálogo.
//
// Todo el paquete es puro: ningún constructor hace I/O ni toca estado compartido.
// Las imágenes llegan ya resueltas como data URI (o URL http/https) dentro de Input.
package document

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-docs/internal/domain/entity"
	"github.com/jhoicas/invoice-docs/internal/domain/totals"
)

// InvoiceInfo datos de cabecera de la factura.
type InvoiceInfo struct {
	ID        string
	Number    string
	IssueDate time.Time
	DueDate   *time.Time
	Currency  string
	Status    string
	Notes     string
	Terms     string
}

// Party emisor o destinatario.
type Party struct {
	Name        string
	CompanyName string
	Email       string
	Phone       string
	Website     string
	TaxID       string
	Address     string
	City        string
	State       string
	PostalCode  string
	Country     string
}

// Item línea del documento. Amount es quantity × rate ya calculado.
type Item struct {
	ProductName string
	Description string
	Quantity    decimal.Decimal
	Unit        string
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// Input datos completos de un render (InvoiceDocumentInput). Se crea por cada
// llamada y se descarta después; los totales siempre vienen de totals.Calculate.
type Input struct {
	Invoice          InvoiceInfo
	Client           Party
	Company          Party
	CompanyLogo      string // data URI o URL; vacío = sin logo
	Items            []Item
	Totals           totals.Totals
	QRCode           string // data URI; vacío = sin QR
	SubscriptionTier string
	BrandName        string
	WatermarkLogo    string // data URI o URL del logo del producto
}

// ShowWatermark: la marca del producto solo se muestra en planes gratuitos o de prueba.
func (in Input) ShowWatermark() bool {
	switch strings.ToLower(strings.TrimSpace(in.SubscriptionTier)) {
	case "", entity.TierFree, entity.TierTrial:
		return true
	default:
		return false
	}
}

// AddressLines arma las líneas de dirección omitiendo las vacías.
func (p Party) AddressLines() []string {
	var lines []string
	if s := strings.TrimSpace(p.Address); s != "" {
		lines = append(lines, s)
	}
	cityLine := joinNonEmpty(", ", p.City, joinNonEmpty(" ", p.State, p.PostalCode))
	if cityLine != "" {
		lines = append(lines, cityLine)
	}
	if s := strings.TrimSpace(p.Country); s != "" {
		lines = append(lines, s)
	}
	return lines
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
