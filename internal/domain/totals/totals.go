// Package totals deriva los montos de una factura a partir de sus ítems.
//
//	itemAmount    = quantity × rate
//	subtotal      = Σ itemAmount
//	discount      = subtotal × discount% / 100
//	taxable       = subtotal − discount
//	tax           = taxable × tax% / 100
//	total         = taxable + tax + shipping
//	balanceDue    = total − paid
//
// Toda la aritmética usa shopspring/decimal sin redondeos intermedios; el redondeo
// a centavos se hace únicamente al formatear.
package totals

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Line cantidad y precio unitario de un ítem.
type Line struct {
	Quantity decimal.Decimal
	Rate     decimal.Decimal
}

// Rates porcentajes y cargos a nivel de factura.
type Rates struct {
	TaxPercent      decimal.Decimal
	DiscountPercent decimal.Decimal
	ShippingCharge  decimal.Decimal
	PaidAmount      decimal.Decimal
}

// Totals montos derivados. BalanceDue conserva el valor crudo (negativo = sobrepago).
type Totals struct {
	LineAmounts     []decimal.Decimal
	Subtotal        decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxableAmount   decimal.Decimal
	TaxPercent      decimal.Decimal
	TaxAmount       decimal.Decimal
	ShippingCharge  decimal.Decimal
	Total           decimal.Decimal
	PaidAmount      decimal.Decimal
	BalanceDue      decimal.Decimal
}

// Calculate aplica las fórmulas de la factura. Porcentajes o cargos negativos se
// tratan como cero.
func Calculate(lines []Line, r Rates) Totals {
	t := Totals{
		LineAmounts:     make([]decimal.Decimal, len(lines)),
		Subtotal:        decimal.Zero,
		DiscountPercent: nonNegative(r.DiscountPercent),
		TaxPercent:      nonNegative(r.TaxPercent),
		ShippingCharge:  nonNegative(r.ShippingCharge),
		PaidAmount:      nonNegative(r.PaidAmount),
	}

	for i, l := range lines {
		amount := LineAmount(l)
		t.LineAmounts[i] = amount
		t.Subtotal = t.Subtotal.Add(amount)
	}

	t.DiscountAmount = t.Subtotal.Mul(t.DiscountPercent).Div(hundred)
	t.TaxableAmount = t.Subtotal.Sub(t.DiscountAmount)
	t.TaxAmount = t.TaxableAmount.Mul(t.TaxPercent).Div(hundred)
	t.Total = t.TaxableAmount.Add(t.TaxAmount).Add(t.ShippingCharge)
	t.BalanceDue = t.Total.Sub(t.PaidAmount)
	return t
}

// LineAmount quantity × rate de un ítem.
func LineAmount(l Line) decimal.Decimal {
	return l.Quantity.Mul(l.Rate)
}

// HasDiscount, HasTax, HasShipping y HasPayment: reglas de visualización (> 0 estricto).
func (t Totals) HasDiscount() bool { return t.DiscountAmount.IsPositive() }
func (t Totals) HasTax() bool      { return t.TaxAmount.IsPositive() }
func (t Totals) HasShipping() bool { return t.ShippingCharge.IsPositive() }
func (t Totals) HasPayment() bool  { return t.PaidAmount.IsPositive() }

// Overpaid indica que lo pagado supera el total.
func (t Totals) Overpaid() bool { return t.BalanceDue.IsNegative() }

// DisplayBalance saldo para mostrar, con piso en cero.
func (t Totals) DisplayBalance() decimal.Decimal {
	if t.BalanceDue.IsNegative() {
		return decimal.Zero
	}
	return t.BalanceDue
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
