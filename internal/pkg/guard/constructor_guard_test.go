package guard_test

import (
	"errors"
	"testing"

	"ordering/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type sku struct {
		code  string
		guard guard.ConstructorGuard
	}
	errSKUNotConstructed := errors.New("sku must be created via newSKU")

	newSKU := func(code string) sku {
		return sku{code: code, guard: guard.NewConstructorGuard()}
	}
	validate := func(s sku) error {
		return s.guard.Validate(errSKUNotConstructed)
	}

	require.NoError(t, validate(newSKU("A-1")))
	require.ErrorIs(t, validate(sku{code: "A-1"}), errSKUNotConstructed)
}
