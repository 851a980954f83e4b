package model

import (
	"slices"
	"testing"
)

// designMap is a DesignSource for tests.
type designMap map[int]RoomDesign

func (m designMap) Lookup(id int) (RoomDesign, bool) {
	d, ok := m[id]
	return d, ok
}

var testArmor = ArmorTable{"1": 2, "5": 7, "13": 18}

func TestBuildLayoutDerivedFields(t *testing.T) {
	designs := designMap{
		1: {RoomType: "Shield", RoomShortName: "SHD:3", Level: 3, Rows: 1, Columns: 2, MaxSystemPower: 4},
		2: {RoomType: "Bedroom", RoomShortName: "Bedroom", Rows: 1, Columns: 2, Capacity: 4},
		3: {RoomType: "Reactor", RoomShortName: "RCT", Rows: 1, Columns: 1, MaxPowerGenerated: 6},
		4: {RoomType: "Wall", RoomShortName: "WAL", Rows: 1, Columns: 1, Capacity: 3},
	}
	ship := RawShip{
		DesignID: 100, ID: 7, Level: 5,
		Rooms: []RawRoom{
			{DesignID: 1, ID: 10, Column: 0, Row: 0, Status: "Upgrading", ItemIDs: []int{1, 2}},
			{DesignID: 2, ID: 11, Column: 5, Row: 5},
			{DesignID: 3, ID: 12, Column: 8, Row: 8},
			{DesignID: 4, ID: 13, Column: 12, Row: 12},
		},
	}

	layout := BuildLayout(ship, designs, []string{"Shield", "Engine"}, testArmor)

	if len(layout.Rooms) != 4 {
		t.Fatalf("expected 4 rooms, got %d", len(layout.Rooms))
	}
	if layout.ArmorValue != 7 {
		t.Errorf("ArmorValue = %d, want 7 for level 5", layout.ArmorValue)
	}

	shield := layout.Rooms[0]
	if shield.ShortName != "SHD" {
		t.Errorf("ShortName = %q, want level suffix stripped", shield.ShortName)
	}
	if !shield.Powered || shield.Power != -4 {
		t.Errorf("shield Powered=%v Power=%d, want powered consumer of 4", shield.Powered, shield.Power)
	}
	if !shield.Essential {
		t.Error("Shield should be essential")
	}
	if !shield.Upgrading {
		t.Error("shield should be upgrading")
	}
	if shield.Width != 2 || shield.Height != 1 {
		t.Errorf("shield size = (%d,%d), want (2,1)", shield.Width, shield.Height)
	}
	if !slices.Equal(shield.ModuleIDs, []int{1, 2}) {
		t.Errorf("ModuleIDs = %v", shield.ModuleIDs)
	}

	bedroom := layout.Rooms[1]
	if bedroom.CrewCapacity != 4 {
		t.Errorf("bedroom CrewCapacity = %d, want 4", bedroom.CrewCapacity)
	}
	if bedroom.Powered {
		t.Error("bedroom should not be powered")
	}
	if bedroom.Essential {
		t.Error("bedroom should not be essential")
	}

	reactor := layout.Rooms[2]
	if !reactor.Powered || reactor.Power != 6 {
		t.Errorf("reactor Powered=%v Power=%d, want powered generator of 6", reactor.Powered, reactor.Power)
	}
	if reactor.CrewCapacity != 0 {
		t.Errorf("reactor CrewCapacity = %d, want 0", reactor.CrewCapacity)
	}

	wall := layout.Rooms[3]
	if wall.ArmorAbility != 3 {
		t.Errorf("wall ArmorAbility = %d, want 3", wall.ArmorAbility)
	}
	if len(layout.ArmorSources()) != 1 || layout.ArmorSources()[0] != wall {
		t.Errorf("ArmorSources() = %v, want the wall room", layout.ArmorSources())
	}
}

func TestBuildLayoutArmorPropagation(t *testing.T) {
	designs := designMap{
		1: {RoomType: "Wall", RoomShortName: "WAL", Rows: 1, Columns: 1, Capacity: 3},
		2: {RoomType: "Bedroom", RoomShortName: "Bedroom", Rows: 1, Columns: 1, Capacity: 2},
	}
	ship := RawShip{
		Level: 1,
		Rooms: []RawRoom{
			{DesignID: 1, ID: 1, Column: 0, Row: 0},
			{DesignID: 2, ID: 2, Column: 1, Row: 0},
		},
	}

	layout := BuildLayout(ship, designs, nil, testArmor)

	bedroom := layout.Rooms[1]
	if bedroom.AccumulatedArmor != 3 {
		t.Errorf("bedroom AccumulatedArmor = %d, want 3", bedroom.AccumulatedArmor)
	}
	// The wall itself has no adjacent wall, so it accumulates nothing.
	if layout.Rooms[0].AccumulatedArmor != 0 {
		t.Errorf("wall AccumulatedArmor = %d, want 0", layout.Rooms[0].AccumulatedArmor)
	}
}

func TestBuildLayoutArmorFromMultipleWalls(t *testing.T) {
	designs := designMap{
		1: {RoomType: "Wall", RoomShortName: "WAL", Rows: 1, Columns: 1, Capacity: 2},
		2: {RoomType: "Shield", RoomShortName: "SHD", Rows: 1, Columns: 1, MaxSystemPower: 3},
	}
	ship := RawShip{
		Level: 1,
		Rooms: []RawRoom{
			{DesignID: 1, ID: 1, Column: 0, Row: 0}, // wall left of the shield
			{DesignID: 1, ID: 2, Column: 2, Row: 0}, // wall right of the shield
			{DesignID: 2, ID: 3, Column: 1, Row: 0},
		},
	}

	layout := BuildLayout(ship, designs, nil, testArmor)

	shield := layout.Rooms[2]
	if shield.AccumulatedArmor != 4 {
		t.Errorf("shield AccumulatedArmor = %d, want 2+2 from both walls", shield.AccumulatedArmor)
	}

	// Armor equals the sum of armor ability over all adjacent walls.
	for _, room := range layout.Rooms {
		sum := 0
		for _, wall := range layout.ArmorSources() {
			if wall.AdjacentTo(room) {
				sum += wall.ArmorAbility
			}
		}
		if room.AccumulatedArmor != sum {
			t.Errorf("room %d armor = %d, want %d", room.InstanceID, room.AccumulatedArmor, sum)
		}
	}
}

func TestBuildLayoutLiftGrouping(t *testing.T) {
	designs := designMap{
		1: {RoomType: "Lift", RoomShortName: "LFT", Rows: 1, Columns: 1},
	}
	ship := RawShip{
		Level: 1,
		Rooms: []RawRoom{
			{DesignID: 1, ID: 1, Column: 3, Row: 2},
			{DesignID: 1, ID: 2, Column: 3, Row: 0},
			{DesignID: 1, ID: 3, Column: 3, Row: 1},
			{DesignID: 1, ID: 4, Column: 7, Row: 0},
		},
	}

	layout := BuildLayout(ship, designs, nil, testArmor)

	if len(layout.Lifts) != 2 {
		t.Fatalf("expected 2 lifts, got %d", len(layout.Lifts))
	}

	shaft := layout.Lifts[0]
	if shaft.Column != 3 || shaft.Length() != 3 {
		t.Fatalf("first lift column=%d length=%d, want column 3 length 3", shaft.Column, shaft.Length())
	}
	if shaft.Kind != LiftKind {
		t.Errorf("lift kind = %q, want %q", shaft.Kind, LiftKind)
	}
	// Ordered top to bottom.
	for i, wantID := range []int{2, 3, 1} {
		if shaft.Rooms[i].InstanceID != wantID {
			t.Errorf("shaft room %d = id %d, want %d", i, shaft.Rooms[i].InstanceID, wantID)
		}
	}

	if layout.Lifts[1].Column != 7 || layout.Lifts[1].Length() != 1 {
		t.Errorf("second lift column=%d length=%d", layout.Lifts[1].Column, layout.Lifts[1].Length())
	}
}

func TestBuildLayoutDropsUnresolvableRooms(t *testing.T) {
	designs := designMap{
		1: {RoomType: "Shield", RoomShortName: "SHD", Rows: 1, Columns: 1},
	}
	ship := RawShip{
		Level: 1,
		Rooms: []RawRoom{
			{DesignID: 1, ID: 1},
			{DesignID: 999, ID: 2}, // no such design
		},
	}

	layout := BuildLayout(ship, designs, nil, testArmor)
	if len(layout.Rooms) != 1 {
		t.Fatalf("expected unresolvable room dropped, got %d rooms", len(layout.Rooms))
	}
	if layout.Rooms[0].InstanceID != 1 {
		t.Errorf("kept room id = %d, want 1", layout.Rooms[0].InstanceID)
	}
}

func TestBuildLayoutEmptyShip(t *testing.T) {
	layout := BuildLayout(RawShip{Level: 13}, designMap{}, nil, testArmor)
	if len(layout.Rooms) != 0 || len(layout.Lifts) != 0 || len(layout.ArmorSources()) != 0 {
		t.Error("empty ship should produce an empty layout")
	}
	// Armor value is still computed from ship level.
	if layout.ArmorValue != 18 {
		t.Errorf("ArmorValue = %d, want 18", layout.ArmorValue)
	}
}
