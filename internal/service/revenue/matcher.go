package revenue

import (
	"strings"

	"github.com/mchuang3/dentms/internal/domain/models"
)

// StaffMatcher resolves the consultant/staff reference stored on an
// accounting row to a canonical staff ID. Legacy rows stored display names
// before staff IDs existed, so both must be checked; the dual-match lives
// here and nowhere else, calculators only ever see canonical IDs.
type StaffMatcher struct {
	byKey map[string]string
}

// NewStaffMatcher indexes the staff list by ID and by trimmed display name.
// IDs are indexed first and never overwritten, so a reference that happens to
// equal both some ID and some name resolves once, to the ID owner.
func NewStaffMatcher(staff []models.Staff) *StaffMatcher {
	byKey := make(map[string]string, len(staff)*2)

	for _, s := range staff {
		if id := strings.TrimSpace(s.ID); id != "" {
			if _, exists := byKey[id]; !exists {
				byKey[id] = s.ID
			}
		}
	}
	for _, s := range staff {
		if name := strings.TrimSpace(s.Name); name != "" {
			if _, exists := byKey[name]; !exists {
				byKey[name] = s.ID
			}
		}
	}

	return &StaffMatcher{byKey: byKey}
}

// Resolve maps a stored reference to a canonical staff ID. The second return
// is false when the reference is empty or matches no current staff member;
// that revenue is simply not attributed to anyone.
func (m *StaffMatcher) Resolve(ref string) (string, bool) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return "", false
	}
	id, ok := m.byKey[trimmed]
	return id, ok
}
