package catalog

import "testing"

func TestParseRoomCatalogJSON(t *testing.T) {
	data := []byte(`{
		"42": {"RoomType": "Shield", "RoomShortName": "SHD:2", "Level": 2, "Rows": 1, "Columns": 2, "MaxSystemPower": 4},
		"broken": "not an object",
		"Designs": {
			"77": {"RoomType": "Wall", "RoomShortName": "WAL", "Capacity": 3}
		}
	}`)

	cat, err := ParseRoomCatalogJSON(data)
	if err != nil {
		t.Fatalf("ParseRoomCatalogJSON failed: %v", err)
	}

	d, ok := cat.Lookup(42)
	if !ok {
		t.Fatal("design 42 not found")
	}
	if d.RoomType != "Shield" || d.MaxSystemPower != 4 {
		t.Errorf("design 42 = %+v", d)
	}

	// Entries wrapped under "Designs" are found through the nested lookup.
	d, ok = cat.Lookup(77)
	if !ok {
		t.Fatal("nested design 77 not found")
	}
	if d.RoomType != "Wall" || d.Capacity != 3 {
		t.Errorf("design 77 = %+v", d)
	}

	if _, ok := cat.Lookup(999); ok {
		t.Error("lookup of unknown design should fail")
	}
}

func TestLookupRawKeyFallback(t *testing.T) {
	data := []byte(`{" 042 ": {"RoomType": "Reactor"}}`)
	cat, err := ParseRoomCatalogJSON(data)
	if err != nil {
		t.Fatalf("ParseRoomCatalogJSON failed: %v", err)
	}
	// " 042 " is numerically 42 even though the canonical key misses.
	d, ok := cat.Lookup(42)
	if !ok {
		t.Fatal("raw-key fallback did not resolve design 42")
	}
	if d.RoomType != "Reactor" {
		t.Errorf("design = %+v", d)
	}
}

func TestParseRoomDesignDump(t *testing.T) {
	dump := `
<RoomDesign RoomDesignId=1, RoomType=Wall, RoomShortName=WAL, Rows=1, Columns=1, Capacity=3, MaxSystemPower=0, MaxPowerGenerated=0>
<RoomDesign RoomDesignId=2, RoomType=Shield, RoomShortName=SHD:2, Level=2, Rows=1, Columns=2, Capacity=0, MaxSystemPower=4, MaxPowerGenerated=0, Flags=[1, 2, 3]>
<RoomDesign RoomType=Orphan>
`
	cat := ParseRoomDesignDump(dump)
	if cat.Len() != 2 {
		t.Fatalf("expected 2 entries (no-id entry skipped), got %d", cat.Len())
	}

	wall, ok := cat.Lookup(1)
	if !ok {
		t.Fatal("design 1 not found")
	}
	if wall.RoomType != "Wall" || wall.Capacity != 3 {
		t.Errorf("wall = %+v", wall)
	}

	shield, ok := cat.Lookup(2)
	if !ok {
		t.Fatal("design 2 not found")
	}
	if shield.RoomShortName != "SHD:2" || shield.MaxSystemPower != 4 || shield.Level != 2 {
		t.Errorf("shield = %+v", shield)
	}
}

func TestConvertValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"None", nil},
		{"True", true},
		{"False", false},
		{"17", 17},
		{"2.5", 2.5},
		{"Wall", "Wall"},
	}
	for _, tt := range tests {
		if got := convertValue(tt.in); got != tt.want {
			t.Errorf("convertValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
