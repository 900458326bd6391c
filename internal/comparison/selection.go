// Package comparison holds the user's comparison selection and the
// best-value engine that runs over it.
package comparison

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"propview/internal/notify"
	"propview/internal/property"
)

// MaxProperties is the selection capacity.
const MaxProperties = 3

// Outcome reports the result of an Add. Rejections are advisory
// signals for the view, not failures.
type Outcome int

const (
	Added Outcome = iota
	AlreadyPresent
	CapacityExceeded
)

// Selection is an ordered set of at most MaxProperties property
// snapshots, persisted to disk after every mutation. Full snapshots
// are stored rather than ids: rehydration needs no re-fetch, at the
// cost of staleness if a property changes after being selected.
type Selection struct {
	path  string
	bus   *notify.Bus
	items []*property.Property
}

// DefaultPath returns the selection file path: ~/.config/pv/comparison.json
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pv", "comparison.json"), nil
}

// Load rehydrates the selection persisted at path. A missing or
// corrupt file yields an empty selection; the view must never crash
// over stale local state. bus may be nil when nobody listens.
func Load(path string, bus *notify.Bus) *Selection {
	s := &Selection{path: path, bus: bus}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var items []*property.Property
	if err := json.Unmarshal(data, &items); err != nil {
		return s
	}

	// Re-assert the invariants in case the file was edited by hand.
	seen := make(map[string]bool, len(items))
	for _, p := range items {
		if p == nil || p.ID == "" || seen[p.ID] {
			continue
		}
		if len(s.items) == MaxProperties {
			break
		}
		seen[p.ID] = true
		s.items = append(s.items, p)
	}
	return s
}

// Properties returns the selected properties in insertion order.
func (s *Selection) Properties() []*property.Property {
	out := make([]*property.Property, len(s.items))
	copy(out, s.items)
	return out
}

// IDs returns the selected property ids in insertion order.
func (s *Selection) IDs() []string {
	ids := make([]string, len(s.items))
	for i, p := range s.items {
		ids[i] = p.ID
	}
	return ids
}

// Len returns the number of selected properties.
func (s *Selection) Len() int {
	return len(s.items)
}

// Add appends p unless it is already selected or the selection is
// full. The returned error comes only from persisting.
func (s *Selection) Add(p *property.Property) (Outcome, error) {
	for _, existing := range s.items {
		if existing.ID == p.ID {
			return AlreadyPresent, nil
		}
	}
	if len(s.items) == MaxProperties {
		return CapacityExceeded, nil
	}

	s.items = append(s.items, p)
	if err := s.persist(); err != nil {
		return Added, err
	}
	s.publish(notify.SelectionAdded, fmt.Sprintf("%s added to comparison", p.Title))
	return Added, nil
}

// Remove drops the property with the given id. Removing an id that is
// not selected is a no-op.
func (s *Selection) Remove(id string) (bool, error) {
	for i, p := range s.items {
		if p.ID == id {
			title := p.Title
			s.items = append(s.items[:i], s.items[i+1:]...)
			if err := s.persist(); err != nil {
				return true, err
			}
			s.publish(notify.SelectionRemoved, fmt.Sprintf("%s removed from comparison", title))
			return true, nil
		}
	}
	return false, nil
}

// Clear empties the selection.
func (s *Selection) Clear() error {
	s.items = nil
	if err := s.persist(); err != nil {
		return err
	}
	s.publish(notify.SelectionCleared, "comparison cleared")
	return nil
}

// persist writes the full snapshot list, synchronously with the
// mutation that triggered it.
func (s *Selection) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating selection directory: %w", err)
	}

	items := s.items
	if items == nil {
		items = []*property.Property{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling selection: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing selection: %w", err)
	}
	return nil
}

func (s *Selection) publish(kind notify.Kind, msg string) {
	if s.bus != nil {
		s.bus.Publish(notify.Event{Kind: kind, Message: msg})
	}
}
