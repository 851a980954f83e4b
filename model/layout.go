package model

import "strconv"

// LiftKind tags lift groupings. The value predates this implementation and
// is kept because the built-in lift rule keys off it.
const LiftKind = "LiftOBJ"

// Lift is a vertically contiguous column of Lift-type rooms treated as one
// evaluable unit. Rooms are ordered top to bottom and are references into
// the owning ShipLayout's room list; a Lift never outlives its layout.
// Lifts are derived, recomputed on every build, and never persisted.
type Lift struct {
	Kind   string
	Column int
	Rooms  []*Room
}

// Length is the number of rooms in the shaft.
func (l *Lift) Length() int { return len(l.Rooms) }

// ShipLayout holds the instantiated arrangement of rooms for one ship at one
// point in time, plus the derived lists computed by BuildLayout.
type ShipLayout struct {
	DesignID   int     `json:"ship_design_id"`
	ShipID     int     `json:"ship_id"`
	Level      int     `json:"ship_level"`
	ArmorValue int     `json:"ship_armor_value"` // per-level scalar from configuration
	Rooms      []*Room `json:"rooms"`

	armorSources []*Room // Wall rooms, in room-list order
	liftRooms    []*Room // Lift rooms, in room-list order
	Lifts        []*Lift `json:"-"`
}

// AdjacentRooms returns every room in the layout adjacent to the given room.
// Linear scan; ships hold on the order of tens of rooms.
func (s *ShipLayout) AdjacentRooms(r *Room) []*Room {
	var out []*Room
	for _, room := range s.Rooms {
		if room.AdjacentTo(r) {
			out = append(out, room)
		}
	}
	return out
}

// ArmorSources returns the layout's Wall rooms.
func (s *ShipLayout) ArmorSources() []*Room { return s.armorSources }

// ArmorTable maps ship level (as a string key, matching the configuration
// file format) to the per-level armor value.
type ArmorTable map[string]int

// Value returns the armor value for a ship level, or 0 for unknown levels.
func (t ArmorTable) Value(level int) int {
	return t[strconv.Itoa(level)]
}
