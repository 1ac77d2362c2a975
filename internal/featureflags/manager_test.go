package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")

	for _, name := range []string{"a", "c", "e"} {
		assert.True(t, m.Enabled(name, 1), name)
	}
	for _, name := range []string{"b", "d", "f", "missing"} {
		assert.False(t, m.Enabled(name, 1), name)
	}
}

func TestEnabled_PercentageRollout(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%,broken=abc%")

	assert.True(t, m.Enabled("always", 1))
	assert.False(t, m.Enabled("never", 1))
	assert.False(t, m.Enabled("broken", 1))
	assert.False(t, m.Enabled("canary", 0), "partial rollout needs a user")

	first := m.Enabled("canary", 42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.Enabled("canary", 42), "rollout must be deterministic per user")
	}
}

func TestNewManager_ParsesLooseInput(t *testing.T) {
	m := NewManager(" bad ,Open_Status_Updates = ON , y = 20% ,z=off,=on,k=")

	assert.Equal(t, map[string]string{
		"open_status_updates": "on",
		"y":                   "20%",
		"z":                   "off",
	}, m.Raw())
	assert.True(t, m.Enabled(OpenStatusUpdates, 7))

	snap := m.Snapshot(7)
	assert.Len(t, snap, 3)
	assert.True(t, snap["open_status_updates"])
	assert.False(t, snap["z"])
}

func TestEnabledOr(t *testing.T) {
	m := NewManager("resume_downloads=off")

	assert.False(t, m.EnabledOr(ResumeDownloads, 0, true))
	assert.True(t, m.EnabledOr("unset", 0, true))

	var nilManager *Manager
	assert.True(t, nilManager.EnabledOr(ResumeDownloads, 0, true))
	assert.False(t, nilManager.Enabled(ResumeDownloads, 0))
	assert.Empty(t, nilManager.Raw())
}
