package entity

import "time"

// Company representa la empresa emisora (remitente) de las facturas de un usuario.
type Company struct {
	ID         string
	UserID     string
	Name       string
	Email      string
	Phone      string
	Website    string
	Address    string
	City       string
	State      string
	PostalCode string
	Country    string
	TaxID      string
	LogoURL    string // URL pública del logo (opcional)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Niveles de suscripción conocidos. Cualquier otro valor se trata como plan pago.
const (
	TierFree       = "free"
	TierTrial      = "trial"
	TierBasic      = "basic"
	TierPremium    = "premium"
	TierEnterprise = "enterprise"
)
