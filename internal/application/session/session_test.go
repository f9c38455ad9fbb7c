package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-docs/internal/application/session"
	"github.com/jhoicas/invoice-docs/internal/domain"
)

func TestContextProvider_ConSesion(t *testing.T) {
	ctx := session.WithUserID(context.Background(), " user-1 ")
	id, err := session.ContextProvider{}.CurrentUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestContextProvider_SinSesion(t *testing.T) {
	_, err := session.ContextProvider{}.CurrentUserID(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = session.ContextProvider{}.CurrentUserID(session.WithUserID(context.Background(), ""))
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "un id vacío equivale a no tener sesión")
}
