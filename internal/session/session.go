// Package session persists the current user identity between
// commands. The identity is a display name and a phone number used as
// an unverified ownership key; it is not an authentication boundary.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Session is the current user identity.
type Session struct {
	Name    string `yaml:"name"`
	Contact string `yaml:"contact"`
}

// Active reports whether an identity has been stored.
func (s Session) Active() bool {
	return s.Contact != ""
}

var contactPattern = regexp.MustCompile(`^[0-9]{10}$`)

// DefaultPath returns the session file path: ~/.config/pv/session.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pv", "session.yaml"), nil
}

// Load reads the session from disk. Returns a zero-value session if
// the file doesn't exist.
func Load(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("reading session: %w", err)
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("parsing session: %w", err)
	}
	return s, nil
}

// Save validates and writes the session to disk.
func Save(path string, s Session) error {
	if err := ValidateName(s.Name); err != nil {
		return err
	}
	if err := ValidateContact(s.Contact); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Clear removes the stored session. A missing file is not an error.
func Clear(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// ValidateName checks the entry-form name rules.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name is required")
	}
	if len(trimmed) < 2 {
		return fmt.Errorf("name must be at least 2 characters")
	}
	return nil
}

// ValidateContact checks for exactly 10 digits.
func ValidateContact(contact string) error {
	if strings.TrimSpace(contact) == "" {
		return fmt.Errorf("contact number is required")
	}
	if !contactPattern.MatchString(contact) {
		return fmt.Errorf("contact must be a 10-digit number")
	}
	return nil
}

// NormalizeContact strips everything but digits, matching the entry
// form's as-you-type filtering.
func NormalizeContact(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
