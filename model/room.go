package model

import "fmt"

// Room is one physical room instance on a ship. Static attributes come from
// the room-design catalog; AccumulatedArmor is derived during layout
// construction and must not be mutated afterwards.
type Room struct {
	DesignID         int    `json:"design_id"`   // type identity, shared across ships
	InstanceID       int    `json:"instance_id"` // unique per ship
	X                int    `json:"x"`
	Y                int    `json:"y"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	RoomType         string `json:"room_type"`
	ShortName        string `json:"short_name"` // type code without the ":<level>" suffix
	Level            int    `json:"level"`
	Powered          bool   `json:"powered"`
	Power            int    `json:"power"` // positive = generator, negative = consumer
	CrewCapacity     int    `json:"num_crew"`
	ArmorAbility     int    `json:"armor_ability"` // nonzero only for Wall rooms
	AccumulatedArmor int    `json:"armor"`
	Essential        bool   `json:"essential"`
	Upgrading        bool   `json:"upgrading"`
	ModuleIDs        []int  `json:"module_ids"`
}

// Label identifies the room in evaluation output.
func (r *Room) Label() string {
	return fmt.Sprintf("%s #%d", r.ShortName, r.InstanceID)
}

// AdjacentTo reports whether two axis-aligned room rectangles share a full
// edge segment: touching on one axis with overlapping extent on the other.
// Symmetric by construction.
func (r *Room) AdjacentTo(o *Room) bool {
	x1, y1, w1, h1 := r.X, r.Y, r.Width, r.Height
	x2, y2, w2, h2 := o.X, o.Y, o.Width, o.Height

	if (x1 == x2+w2 || x1+w1 == x2) && (y1 < y2+h2 && y1+h1 > y2) {
		return true
	}
	if (y1 == y2+h2 || y1+h1 == y2) && (x1 < x2+w2 && x1+w1 > x2) {
		return true
	}
	return false
}
