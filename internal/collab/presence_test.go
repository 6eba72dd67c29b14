package collab

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridboard/gridboard/backend-go/internal/geom"
)

func TestPresenceManagerLifecycle(t *testing.T) {
	pm := NewPresenceManager()

	pm.Update("user_a", &PresencePayload{
		Cursor:      &geom.WorldPoint{X: 3, Y: 4},
		Selection:   []string{"shape_1"},
		DisplayName: "Alice",
	})
	pm.Update("user_b", &PresencePayload{DisplayName: "Bob"})

	all := pm.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, "Alice", all["user_a"].DisplayName)

	pm.Remove("user_a")
	assert.Len(t, pm.GetAll(), 1)
}

func TestPresenceStateMessage(t *testing.T) {
	pm := NewPresenceManager()
	pm.Update("user_a", &PresencePayload{DisplayName: "Alice"})

	msg := pm.StateMessage()
	require.NotNil(t, msg)
	assert.Equal(t, TypePresenceState, msg.Type)

	var payload PresenceStatePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Contains(t, payload.Presences, "user_a")
}

func TestPresenceDropsNonFiniteCursor(t *testing.T) {
	pm := NewPresenceManager()

	pm.Update("user_a", &PresencePayload{
		Cursor:      &geom.WorldPoint{X: math.NaN(), Y: 4},
		DisplayName: "Alice",
	})

	all := pm.GetAll()
	require.Contains(t, all, "user_a")
	assert.Nil(t, all["user_a"].Cursor, "non-finite cursor is not forwarded")
}

func TestPresenceCapsSelection(t *testing.T) {
	pm := NewPresenceManager()

	selection := make([]string, maxSelectionSize+10)
	for i := range selection {
		selection[i] = "shape_x"
	}
	pm.Update("user_a", &PresencePayload{Selection: selection})

	assert.Len(t, pm.GetAll()["user_a"].Selection, maxSelectionSize)
}

func TestPresencePruneEvictsStaleEntries(t *testing.T) {
	pm := NewPresenceManager()

	now := time.Now()
	pm.now = func() time.Time { return now }
	pm.Update("user_stale", &PresencePayload{DisplayName: "Gone"})

	pm.now = func() time.Time { return now.Add(presenceTTL + time.Second) }
	pm.Update("user_live", &PresencePayload{DisplayName: "Here"})

	all := pm.GetAll()
	assert.NotContains(t, all, "user_stale", "stale entries are hidden before pruning")
	assert.Contains(t, all, "user_live")

	assert.Equal(t, 1, pm.Prune())
	pm.mu.RLock()
	_, ok := pm.entries["user_stale"]
	pm.mu.RUnlock()
	assert.False(t, ok)
}
