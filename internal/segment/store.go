package segment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes segs as a JSON array of [start, end, speakerId] records.
// The file is written next to path and renamed into place.
func Save(path string, segs []Segment) error {
	if segs == nil {
		segs = []Segment{}
	}
	data, err := json.MarshalIndent(segs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode segments: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create segments dir: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write segments: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("move segments into place: %w", err)
	}
	return nil
}

// Load reads a timeline written by Save.
func Load(path string) ([]Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read segments: %w", err)
	}

	var segs []Segment
	if err := json.Unmarshal(data, &segs); err != nil {
		return nil, fmt.Errorf("parse segments %s: %w", path, err)
	}
	return segs, nil
}

// LoadRaw reads a JSON array of [start, end, label] records.
func LoadRaw(path string) ([]Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read raw segments: %w", err)
	}

	var raws []Raw
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parse raw segments %s: %w", path, err)
	}
	return raws, nil
}
