package buildergen_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/buildergen"
)

func TestNotSetError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := buildergen.NewNotSetError("executable")
		assert.Equal(t, "The field `executable` was not setted.", err.Error())
	})

	t.Run("Field", func(t *testing.T) {
		err := buildergen.NewNotSetError("Name")
		assert.Equal(t, "Name", err.Field())
	})

	t.Run("Is", func(t *testing.T) {
		err := buildergen.NewNotSetError("Name")
		assert.True(t, errors.Is(err, buildergen.ErrNotSet))
	})

	t.Run("IsNotSet", func(t *testing.T) {
		err := buildergen.NewNotSetError("Name")
		assert.True(t, buildergen.IsNotSet(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, buildergen.IsNotSet(wrapped))

		// Sentinel error
		assert.True(t, buildergen.IsNotSet(buildergen.ErrNotSet))

		// Non-matching error
		assert.False(t, buildergen.IsNotSet(errors.New("other error")))
		assert.False(t, buildergen.IsNotSet(nil))
	})

	t.Run("NotSetField", func(t *testing.T) {
		wrapped := fmt.Errorf("build: %w", buildergen.NewNotSetError("Args"))
		name, ok := buildergen.NotSetField(wrapped)
		assert.True(t, ok)
		assert.Equal(t, "Args", name)

		_, ok = buildergen.NotSetField(errors.New("other"))
		assert.False(t, ok)
	})
}
