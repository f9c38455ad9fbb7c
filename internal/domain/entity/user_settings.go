package entity

import "time"

// UserSettings preferencias persistidas por usuario.
type UserSettings struct {
	UserID           string
	SelectedTemplate int // 0 = no definido (se usa la plantilla por defecto)
	SubscriptionTier string
	UpdatedAt        time.Time
}
