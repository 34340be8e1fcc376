// Package recommend holds the static per-country recommendation table: best
// posting hours and trending hashtags, with a language tag that selects the
// report language. The table is embedded in the binary, loaded once at startup
// and read-only afterwards.
package recommend

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data.json
var rawData []byte

// Entry is one country's recommendation data. Hours and Hashtags keep their
// stored order.
type Entry struct {
	Name     string   `json:"name"`
	Lang     string   `json:"lang"`
	Hours    []string `json:"hours"`
	Hashtags []string `json:"hashtags"`
}

type Table struct {
	entries map[string]Entry
	order   []string
}

type tableFile struct {
	Countries []Entry `json:"countries"`
}

// Load parses the embedded table. A malformed or empty table is an error; the
// caller treats it as startup-fatal.
func Load() (*Table, error) {
	var file tableFile
	if err := json.Unmarshal(rawData, &file); err != nil {
		return nil, fmt.Errorf("failed to parse recommendation table: %w", err)
	}
	if len(file.Countries) == 0 {
		return nil, fmt.Errorf("recommendation table contains no countries")
	}

	t := &Table{
		entries: make(map[string]Entry, len(file.Countries)),
		order:   make([]string, 0, len(file.Countries)),
	}
	for _, entry := range file.Countries {
		if entry.Name == "" {
			return nil, fmt.Errorf("recommendation table contains an unnamed country")
		}
		if len(entry.Hours) == 0 || len(entry.Hashtags) == 0 {
			return nil, fmt.Errorf("recommendation entry for %q is incomplete", entry.Name)
		}
		if _, dup := t.entries[entry.Name]; dup {
			return nil, fmt.Errorf("recommendation table contains duplicate country %q", entry.Name)
		}
		t.entries[entry.Name] = entry
		t.order = append(t.order, entry.Name)
	}

	return t, nil
}

// Lookup returns the entry for a country name.
func (t *Table) Lookup(country string) (Entry, bool) {
	entry, ok := t.entries[country]
	return entry, ok
}

// Countries returns country names in stored order, for building the
// selection keyboard.
func (t *Table) Countries() []string {
	return t.order
}
