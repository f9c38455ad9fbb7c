// Package session transporta la identidad del usuario autenticado en el context.Context.
// El middleware HTTP la coloca después de validar el JWT; la capa de aplicación la lee
// a través de ContextProvider sin depender de Fiber.
package session

import (
	"context"
	"strings"

	"github.com/jhoicas/invoice-docs/internal/domain"
)

type ctxKey struct{}

// WithUserID devuelve un contexto derivado con el id de usuario.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, strings.TrimSpace(userID))
}

// UserID devuelve el id del usuario del contexto, si existe.
func UserID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// ContextProvider implementa billing.SessionProvider leyendo el contexto.
type ContextProvider struct{}

// CurrentUserID devuelve domain.ErrUnauthorized si no hay sesión.
func (ContextProvider) CurrentUserID(ctx context.Context) (string, error) {
	id, ok := UserID(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	return id, nil
}
