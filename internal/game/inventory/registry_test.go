package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/campaign/internal/game/inventory"
)

func TestRegistry_RegisterItem(t *testing.T) {
	r := inventory.NewRegistry()
	d := &inventory.ItemDef{ID: "rope", Name: "Rope", Kind: inventory.KindGear}
	require.NoError(t, r.RegisterItem(d))
	assert.Error(t, r.RegisterItem(d))

	got, ok := r.Item("rope")
	require.True(t, ok)
	assert.Same(t, d, got)
	_, ok = r.Item("nope")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestLoadRegistry_BundledContent(t *testing.T) {
	r, err := inventory.LoadRegistry("../../../content/items")
	require.NoError(t, err)
	assert.Greater(t, r.Len(), 5)

	all := r.AllItems()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
	shield, ok := r.Item("shield")
	require.True(t, ok)
	assert.Equal(t, inventory.KindShield, shield.Kind)
}

func TestLoadRegistry_MissingDir(t *testing.T) {
	_, err := inventory.LoadRegistry("does/not/exist")
	assert.Error(t, err)
}
