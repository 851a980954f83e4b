package model

import (
	"log/slog"
	"slices"
	"strings"
)

const (
	roomTypeWall = "Wall"
	roomTypeLift = "Lift"
)

// BuildLayout produces a fully-populated ShipLayout from one raw ship record,
// a room-design source, the configured essential room types, and the
// armor-per-level table.
//
// Rooms whose design cannot be resolved are dropped and logged; the layout
// still builds from the remaining rooms. A layout with zero resolvable rooms
// is valid but empty.
func BuildLayout(ship RawShip, designs DesignSource, essential []string, armor ArmorTable) *ShipLayout {
	layout := &ShipLayout{
		DesignID:   ship.DesignID,
		ShipID:     ship.ID,
		Level:      ship.Level,
		ArmorValue: armor.Value(ship.Level),
	}

	for _, raw := range ship.Rooms {
		design, ok := designs.Lookup(raw.DesignID)
		if !ok {
			slog.Warn("room design not found, dropping room", "roomID", raw.ID, "designID", raw.DesignID)
			continue
		}
		room := newRoom(raw, design, essential)
		layout.Rooms = append(layout.Rooms, room)
		switch room.RoomType {
		case roomTypeWall:
			layout.armorSources = append(layout.armorSources, room)
		case roomTypeLift:
			layout.liftRooms = append(layout.liftRooms, room)
		}
	}

	propagateArmor(layout)
	layout.Lifts = groupLifts(layout.liftRooms)

	slog.Debug("layout built",
		"shipID", ship.ID,
		"rooms", len(layout.Rooms),
		"walls", len(layout.armorSources),
		"lifts", len(layout.Lifts),
		"armorValue", layout.ArmorValue,
	)
	return layout
}

func newRoom(raw RawRoom, design RoomDesign, essential []string) *Room {
	// A room is either a net producer or a net consumer, never both.
	power := design.MaxPowerGenerated
	if power == 0 {
		power = -design.MaxSystemPower
	}

	shortName, _, _ := strings.Cut(design.RoomShortName, ":")

	crew := 0
	if shortName == "Bedroom" {
		crew = design.Capacity
	}

	armorAbility := 0
	if design.RoomType == roomTypeWall {
		armorAbility = design.Capacity
	}

	return &Room{
		DesignID:     raw.DesignID,
		InstanceID:   raw.ID,
		X:            raw.Column,
		Y:            raw.Row,
		Width:        design.Columns,
		Height:       design.Rows,
		RoomType:     design.RoomType,
		ShortName:    shortName,
		Level:        design.Level,
		Powered:      design.MaxSystemPower > 0 || design.MaxPowerGenerated > 0,
		Power:        power,
		CrewCapacity: crew,
		ArmorAbility: armorAbility,
		Essential:    slices.Contains(essential, design.RoomType),
		Upgrading:    raw.Status == "Upgrading",
		ModuleIDs:    raw.ItemIDs,
	}
}

// propagateArmor adds each wall room's armor ability to every adjacent room.
// A room may accumulate armor from multiple wall neighbors; armor never
// decreases.
func propagateArmor(layout *ShipLayout) {
	for _, wall := range layout.armorSources {
		for _, room := range layout.AdjacentRooms(wall) {
			room.AccumulatedArmor += wall.ArmorAbility
		}
	}
}

// groupLifts groups Lift rooms by column and orders each group top to bottom.
// Lift shafts in the source game are strictly vertical and never span more
// than one column.
func groupLifts(liftRooms []*Room) []*Lift {
	byColumn := make(map[int][]*Room)
	var columns []int
	for _, room := range liftRooms {
		if _, seen := byColumn[room.X]; !seen {
			columns = append(columns, room.X)
		}
		byColumn[room.X] = append(byColumn[room.X], room)
	}

	var lifts []*Lift
	for _, col := range columns {
		rooms := byColumn[col]
		slices.SortStableFunc(rooms, func(a, b *Room) int { return a.Y - b.Y })
		lifts = append(lifts, &Lift{Kind: LiftKind, Column: col, Rooms: rooms})
	}
	return lifts
}
