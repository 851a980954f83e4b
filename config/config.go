// Package config loads named configuration values for the companion app:
// the essential room types, the armor-value-per-level table, and the file
// locations the CLI glue reads from. Values come from a YAML file with
// environment-variable fallbacks; missing or unreadable files fall back to
// the built-in defaults rather than failing.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// EssentialRooms lists the room types considered structurally important
	// to ship viability. Order is preserved.
	EssentialRooms []string `yaml:"essential_rooms"`
	// ArmorValuePerLevel maps ship level (string key) to the expected
	// per-room armor value at that level.
	ArmorValuePerLevel map[string]int `yaml:"armor_value_per_level"`

	RulesPath       string `yaml:"rules_path"`
	RoomDesignsPath string `yaml:"room_designs_path"`
	ShipDesignsPath string `yaml:"ship_designs_path"`

	Snapshot SnapshotConfig `yaml:"snapshot"`
}

type SnapshotConfig struct {
	Dir         string `yaml:"dir"`
	DedupHours  int    `yaml:"dedup_hours"`  // skip saves younger than this
	KeepEntries int    `yaml:"keep_entries"` // history entries retained per player
}

// Default returns the built-in configuration. The essential room list and
// armor table mirror the game's current balance values.
func Default() *Config {
	return &Config{
		EssentialRooms: []string{"Shield", "Engine", "Stealth", "Teleport", "Android"},
		ArmorValuePerLevel: map[string]int{
			"1": 2, "2": 4, "3": 5, "4": 6, "5": 7,
			"6": 8, "7": 9, "8": 10, "9": 12, "10": 14,
			"11": 16, "12": 18, "13": 18,
		},
		RulesPath:       "room_rules.dsl",
		RoomDesignsPath: "room_designs.json",
		ShipDesignsPath: "ship_designs.json",
		Snapshot: SnapshotConfig{
			Dir:         "user_data",
			DedupHours:  6,
			KeepEntries: 30,
		},
	}
}

// Load reads a YAML config file. If path is empty, the SHIPADVISOR_CONFIG
// environment variable is consulted; if that is unset too, or the file is
// missing, defaults are returned. Unparseable YAML is an error: a present
// but broken config file should be fixed, not silently ignored.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("SHIPADVISOR_CONFIG")
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("config file not found, using defaults", "path", path)
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	slog.Info("configuration loaded", "path", path)
	return cfg, nil
}

// RulesFile returns the rule file path, honoring the SHIPADVISOR_RULES
// environment variable over the config value.
func (c *Config) RulesFile() string {
	if env := os.Getenv("SHIPADVISOR_RULES"); env != "" {
		return env
	}
	return c.RulesPath
}

// ArmorValue returns the armor value for a ship level, or 0 for levels not
// in the table.
func (c *Config) ArmorValue(level int) int {
	return c.ArmorValuePerLevel[strconv.Itoa(level)]
}
