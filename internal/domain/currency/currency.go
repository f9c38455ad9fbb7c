// Package currency convierte montos y códigos ISO 4217 en texto para los documentos.
// El redondeo a 2 decimales ocurre solo aquí, nunca antes de sumar.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCode se usa cuando la factura no trae moneda.
const DefaultCode = "USD"

// symbols mapea códigos ISO 4217 a su símbolo de visualización.
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"JPY": "¥",
	"CNY": "¥",
	"KRW": "₩",
	"RUB": "₽",
	"BRL": "R$",
	"ZAR": "R",
	"AED": "د.إ",
	"AUD": "A$",
	"CAD": "C$",
	"CHF": "CHF ",
	"HKD": "HK$",
	"SGD": "S$",
	"NZD": "NZ$",
	"MXN": "MX$",
	"COP": "COL$",
	"PHP": "₱",
	"THB": "฿",
	"TRY": "₺",
	"ILS": "₪",
	"NGN": "₦",
	"KES": "KSh ",
	"PKR": "₨",
	"BDT": "৳",
	"MYR": "RM",
	"IDR": "Rp ",
	"VND": "₫",
	"SEK": "kr ",
	"NOK": "kr ",
	"DKK": "kr. ",
	"PLN": "zł ",
	"SAR": "﷼",
}

// Normalize limpia y pasa a mayúsculas un código; vacío → DefaultCode.
func Normalize(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCode
	}
	return code
}

// Symbol devuelve el prefijo a mostrar para el código. Si el código no está en la
// tabla se devuelve el código crudo seguido de un espacio ("XYZ ").
func Symbol(code string) string {
	code = Normalize(code)
	if s, ok := symbols[code]; ok {
		return s
	}
	return code + " "
}

// Known indica si el código tiene símbolo propio.
func Known(code string) bool {
	_, ok := symbols[Normalize(code)]
	return ok
}

// Format redondea a 2 decimales, agrupa miles con coma y antepone el símbolo.
// Ej: Format(1234.5, "USD") → "$1,234.50"; Format(-5, "EUR") → "-€5.00".
func Format(amount decimal.Decimal, code string) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	return sign + Symbol(code) + FormatNumber(amount)
}

// FormatNumber devuelve el monto con 2 decimales y separador de miles, sin símbolo.
// Ej: "1234567.891" → "1,234,567.89".
func FormatNumber(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, frac, _ := strings.Cut(fixed, ".")
	out := groupThousands(intPart) + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// FormatPercent devuelve la representación decimal más corta (10, 7.5, 0.25).
func FormatPercent(p decimal.Decimal) string {
	return p.String()
}

// groupThousands inserta comas de miles en un string numérico sin signo.
// Ej: "25000" → "25,000", "1000000" → "1,000,000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
