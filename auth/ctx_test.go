package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storekit/backoffice/auth"
)

func TestPrincipalContext(t *testing.T) {
	t.Run("round trips a principal", func(t *testing.T) {
		principal := &auth.Principal{
			Subject:      "alice@example.com",
			Capabilities: []string{"franchisee"},
		}

		ctx := auth.WithPrincipal(context.Background(), principal)

		got, ok := auth.PrincipalFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, principal, got)
	})

	t.Run("empty context has no principal", func(t *testing.T) {
		got, ok := auth.PrincipalFromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, got)
	})
}

func TestPrincipal_Capabilities(t *testing.T) {
	principal := &auth.Principal{
		Subject:      "bob@example.com",
		Capabilities: []string{"franchise_owner", "admin"},
	}

	t.Run("HasCapability", func(t *testing.T) {
		assert.True(t, principal.HasCapability("admin"))
		assert.False(t, principal.HasCapability("franchisee"))
	})

	t.Run("HasAnyCapability", func(t *testing.T) {
		assert.True(t, principal.HasAnyCapability("franchisee", "admin"))
		assert.False(t, principal.HasAnyCapability("franchisee"))
		assert.False(t, principal.HasAnyCapability())
	})

	t.Run("nil principal has no capabilities", func(t *testing.T) {
		var nobody *auth.Principal
		assert.False(t, nobody.HasCapability("admin"))
		assert.False(t, nobody.HasAnyCapability("admin"))
	})
}
