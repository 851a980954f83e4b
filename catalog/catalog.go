// Package catalog loads the game's static design catalogs: the room-design
// and ship-design tables the layout builder resolves raw records against.
// Catalogs are read either from JSON files (the cached form) or from the
// game's raw "<RoomDesign key=value, ...>" dump format.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/starcrest/shipadvisor/model"
)

// RoomCatalog maps room design ids to their static attribute records.
// Lookup tries the canonical string key first, then a raw-key fallback
// (non-canonical numeric keys), then a nested "Designs" sub-map if the
// source file wrapped its entries.
type RoomCatalog struct {
	designs map[string]model.RoomDesign
	nested  map[string]model.RoomDesign
}

// Lookup resolves a room design id.
func (c *RoomCatalog) Lookup(designID int) (model.RoomDesign, bool) {
	key := strconv.Itoa(designID)
	if d, ok := c.designs[key]; ok {
		return d, true
	}
	// Raw-key fallback: keys that are numerically equal but not in
	// canonical form (whitespace, leading zeros).
	for k, d := range c.designs {
		if n, err := strconv.Atoi(strings.TrimSpace(k)); err == nil && n == designID {
			return d, true
		}
	}
	if d, ok := c.nested[key]; ok {
		return d, true
	}
	return model.RoomDesign{}, false
}

// Len returns the number of catalog entries.
func (c *RoomCatalog) Len() int { return len(c.designs) + len(c.nested) }

// LoadRoomCatalog reads a JSON room-design catalog file.
func LoadRoomCatalog(path string) (*RoomCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read room catalog: %w", err)
	}
	return ParseRoomCatalogJSON(data)
}

// ParseRoomCatalogJSON parses a JSON catalog of the form
// {"<designId>": {...}, ...}, optionally with entries wrapped under a
// "Designs" key. Entries that fail to decode are skipped and logged.
func ParseRoomCatalogJSON(data []byte) (*RoomCatalog, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse room catalog: %w", err)
	}

	cat := &RoomCatalog{
		designs: make(map[string]model.RoomDesign),
		nested:  make(map[string]model.RoomDesign),
	}
	for key, msg := range raw {
		if key == "Designs" {
			if err := json.Unmarshal(msg, &cat.nested); err != nil {
				slog.Warn("nested Designs map failed to decode, skipping", "error", err)
			}
			continue
		}
		var d model.RoomDesign
		if err := json.Unmarshal(msg, &d); err != nil {
			slog.Warn("room design entry failed to decode, skipping", "designID", key, "error", err)
			continue
		}
		cat.designs[key] = d
	}
	return cat, nil
}

// ShipCatalog maps ship design ids to their static records.
type ShipCatalog map[string]model.ShipDesign

// Lookup resolves a ship design id.
func (c ShipCatalog) Lookup(designID int) (model.ShipDesign, bool) {
	d, ok := c[strconv.Itoa(designID)]
	return d, ok
}

// LoadShipCatalog reads a JSON ship-design catalog file.
func LoadShipCatalog(path string) (ShipCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ship catalog: %w", err)
	}
	var cat ShipCatalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse ship catalog: %w", err)
	}
	return cat, nil
}
