package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathways/internal/journey"
)

func TestResolve(t *testing.T) {
	intake := &journey.Intake{
		Parent1: &journey.Person{FullName: "Jane Doe", DOB: "1990-01-01"},
		Baby:    &journey.Baby{DOB: "2025-01-10"},
		Address: &journey.Address{Suburb: "Parramatta", Postcode: "2150"},
	}

	t.Run("nested path resolves", func(t *testing.T) {
		v, ok := Resolve(intake, "parent1.full_name")
		require.True(t, ok)
		assert.Equal(t, "Jane Doe", v)
	})

	t.Run("missing group is a soft miss", func(t *testing.T) {
		_, ok := Resolve(intake, "employment.last_employer")
		assert.False(t, ok)
	})

	t.Run("empty leaf is a soft miss", func(t *testing.T) {
		_, ok := Resolve(intake, "baby.name")
		assert.False(t, ok)
	})

	t.Run("single segment resolves", func(t *testing.T) {
		v, ok := Resolve(intake, "address")
		require.True(t, ok)
		assert.Equal(t, intake.Address, v)
	})

	t.Run("path through a leaf is a soft miss", func(t *testing.T) {
		_, ok := Resolve(intake, "parent1.full_name.extra")
		assert.False(t, ok)
	})

	t.Run("empty path is a soft miss", func(t *testing.T) {
		_, ok := Resolve(intake, "")
		assert.False(t, ok)
	})

	t.Run("maps traverse by key", func(t *testing.T) {
		record := map[string]any{
			"outer": map[string]any{"inner": 42},
		}
		v, ok := Resolve(record, "outer.inner")
		require.True(t, ok)
		assert.Equal(t, 42, v)

		_, ok = Resolve(record, "outer.absent")
		assert.False(t, ok)
	})

	t.Run("nil record is a soft miss", func(t *testing.T) {
		_, ok := Resolve(nil, "anything")
		assert.False(t, ok)
	})
}
