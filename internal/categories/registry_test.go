package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryLoadsEmbeddedConfig(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)
	require.NotNil(t, registry)

	assert.Equal(t, []string{"academic", "financial", "administrative", "personal", "placement", "internship"}, registry.IDs())
}

func TestRegistryGet(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	cat, err := registry.Get("academic")
	require.NoError(t, err)
	assert.Equal(t, "academic", cat.ID)
	assert.Equal(t, "Academic", cat.Label)
	assert.Contains(t, cat.SubCategories, "marksheet")

	_, err = registry.Get("taxes")
	assert.Error(t, err)
}

func TestRegistryValid(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	tests := []struct {
		id   string
		want bool
	}{
		{"academic", true},
		{"financial", true},
		{"internship", true},
		{"", false},
		{"Academic", false},
		{"unknown", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, registry.Valid(tt.id), "Valid(%q)", tt.id)
	}
}

func TestRegistryListFollowsConfiguredOrder(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	list := registry.List()
	require.Len(t, list, 6)
	assert.Equal(t, "academic", list[0].ID)
	assert.Equal(t, "internship", list[5].ID)

	for _, cat := range list {
		assert.NotEmpty(t, cat.Label, "category %s has no label", cat.ID)
		assert.NotEmpty(t, cat.Color, "category %s has no color", cat.ID)
	}
}
