package forms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "pathways/pkg/domain-errors"
)

func TestRegistryLoad(t *testing.T) {
	t.Run("builtin schemas serve every planned step", func(t *testing.T) {
		registry := NewRegistry("")
		for _, stepID := range []string{
			"birth_reg", "medicare_enrolment",
			"unemployment_centrelink", "job_service_provider",
			"emergency_disaster_payment", "emergency_housing_assistance",
			"carer_payment", "carer_allowance",
		} {
			schema, err := registry.Load(stepID)
			require.NoError(t, err, stepID)
			assert.NotEmpty(t, schema.ID, stepID)
			assert.NotEmpty(t, schema.Fields, stepID)
			assert.NotEmpty(t, schema.ReviewText, stepID)
		}
	})

	t.Run("birth schema maps sources into the intake", func(t *testing.T) {
		schema, err := NewRegistry("").Load("birth_reg")
		require.NoError(t, err)
		assert.Equal(t, "birth_registry_nsw", schema.ID)

		bySource := map[string]Field{}
		for _, f := range schema.Fields {
			bySource[f.Source] = f
		}
		assert.True(t, bySource["parent1.full_name"].Required)
		assert.False(t, bySource["baby.name"].Required)
	})

	t.Run("file schema overrides builtin", func(t *testing.T) {
		dir := t.TempDir()
		schemaYAML := `
id: birth_registry_custom
title: Custom Birth Registration
fields:
  - id: parent1_full_name
    label: Parent Name
    required: true
    source: parent1.full_name
review_text: Custom review.
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "birth_reg.yml"), []byte(schemaYAML), 0o640))

		schema, err := NewRegistry(dir).Load("birth_reg")
		require.NoError(t, err)
		assert.Equal(t, "birth_registry_custom", schema.ID)
		require.Len(t, schema.Fields, 1)
		assert.Equal(t, "parent1.full_name", schema.Fields[0].Source)
	})

	t.Run("missing file falls back to builtin", func(t *testing.T) {
		schema, err := NewRegistry(t.TempDir()).Load("birth_reg")
		require.NoError(t, err)
		assert.Equal(t, "birth_registry_nsw", schema.ID)
	})

	t.Run("malformed file is an internal error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "birth_reg.yml"), []byte("{not yaml"), 0o640))

		_, err := NewRegistry(dir).Load("birth_reg")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})

	t.Run("unknown step is not found", func(t *testing.T) {
		_, err := NewRegistry("").Load("passport_renewal")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("unsafe step id rejected before touching disk", func(t *testing.T) {
		_, err := NewRegistry(t.TempDir()).Load("../evil")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func TestRegistryKnown(t *testing.T) {
	registry := NewRegistry("")
	assert.True(t, registry.Known("birth_reg"))
	assert.False(t, registry.Known("passport_renewal"))
}
