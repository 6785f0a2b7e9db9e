package snapshot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Save writes the snapshot as a YAML document.
func Save(path string, s *Snapshot) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("refusing to save incoherent snapshot: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Load reads and validates a snapshot document.
func Load(path string) (*Snapshot, error) {
	//nolint:gosec // G304: Snapshot paths come from the command line.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot %s incoherent: %w", path, err)
	}
	return &s, nil
}
