package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabled(t *testing.T) {
	t.Run("boolean values", func(t *testing.T) {
		m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")
		assert.True(t, m.Enabled("a", 1))
		assert.True(t, m.Enabled("c", 1))
		assert.True(t, m.Enabled("e", 1))
		assert.False(t, m.Enabled("b", 1))
		assert.False(t, m.Enabled("d", 1))
		assert.False(t, m.Enabled("f", 1))
	})

	t.Run("unknown flag is off", func(t *testing.T) {
		m := NewManager("a=on")
		assert.False(t, m.Enabled("missing", 1))
	})

	t.Run("percentage rollout", func(t *testing.T) {
		m := NewManager("always=100%,never=0%,canary=25%")
		assert.True(t, m.Enabled("always", 1))
		assert.False(t, m.Enabled("never", 1))

		first := m.Enabled("canary", 42)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, m.Enabled("canary", 42),
				"rollout evaluation must be deterministic per user")
		}

		assert.False(t, m.Enabled("canary", 0),
			"percentage rollout requires a known user")
	})

	t.Run("nil manager is all off", func(t *testing.T) {
		var m *Manager
		assert.False(t, m.Enabled("anything", 1))
	})
}

func TestParseAndSnapshot(t *testing.T) {
	m := NewManager(" bad ,x=on, y = 20% ,z=off ")

	raw := m.Raw()
	assert.Len(t, raw, 3)
	assert.Equal(t, "on", raw["x"])
	assert.Equal(t, "20%", raw["y"])
	assert.Equal(t, "off", raw["z"])

	snap := m.Snapshot(123)
	assert.Len(t, snap, 3)
	assert.True(t, snap["x"])
	assert.False(t, snap["z"])
}
