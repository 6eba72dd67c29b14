package collab

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// presenceTTL bounds how long a cursor survives without an update. A client
// whose connection wedges without a clean close would otherwise leave its
// cursor on every other user's board forever.
const presenceTTL = 2 * time.Minute

// maxSelectionSize caps the shape ids a single presence update may carry.
const maxSelectionSize = 256

type presenceEntry struct {
	payload   *PresencePayload
	updatedAt time.Time
}

type PresenceManager struct {
	mu      sync.RWMutex
	entries map[string]*presenceEntry // userID -> entry
	now     func() time.Time
}

func NewPresenceManager() *PresenceManager {
	return &PresenceManager{
		entries: make(map[string]*presenceEntry),
		now:     time.Now,
	}
}

// Update records a user's presence. Non-finite cursor coordinates are
// dropped rather than forwarded: they come straight off the wire and would
// poison every peer's overlay math.
func (pm *PresenceManager) Update(userID string, p *PresencePayload) {
	if p.Cursor != nil && !p.Cursor.IsFinite() {
		slog.Warn("dropping non-finite presence cursor", "user", userID)
		p.Cursor = nil
	}
	if len(p.Selection) > maxSelectionSize {
		p.Selection = p.Selection[:maxSelectionSize]
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.entries[userID] = &presenceEntry{payload: p, updatedAt: pm.now()}
}

func (pm *PresenceManager) Remove(userID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.entries, userID)
}

func (pm *PresenceManager) GetAll() map[string]*PresencePayload {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	result := make(map[string]*PresencePayload, len(pm.entries))
	cutoff := pm.now().Add(-presenceTTL)
	for userID, entry := range pm.entries {
		if entry.updatedAt.Before(cutoff) {
			continue
		}
		result[userID] = entry.payload
	}
	return result
}

// Prune evicts entries that have not been refreshed within presenceTTL and
// returns how many were dropped.
func (pm *PresenceManager) Prune() int {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	cutoff := pm.now().Add(-presenceTTL)
	pruned := 0
	for userID, entry := range pm.entries {
		if entry.updatedAt.Before(cutoff) {
			delete(pm.entries, userID)
			pruned++
		}
	}
	return pruned
}

func (pm *PresenceManager) StateMessage() *Message {
	all := pm.GetAll()
	payload, err := json.Marshal(PresenceStatePayload{Presences: all})
	if err != nil {
		slog.Error("marshal presence state", "error", err)
		return nil
	}
	return &Message{
		Type:    TypePresenceState,
		Payload: payload,
	}
}
