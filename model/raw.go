package model

// RawRoom is one per-room design record as supplied by the game API (or a
// cached snapshot of it). Column/Row are the room's top-left grid position.
type RawRoom struct {
	DesignID int    `json:"room_design_id"`
	ID       int    `json:"id"`
	Column   int    `json:"column"`
	Row      int    `json:"row"`
	ItemIDs  []int  `json:"item_ids"`
	Status   string `json:"room_status"`
}

// RawShip is the raw ship record the layout builder consumes. The room list
// order is preserved through construction and evaluation.
type RawShip struct {
	DesignID int       `json:"ship_design_id"`
	ID       int       `json:"id"`
	Level    int       `json:"ship_level"`
	Rooms    []RawRoom `json:"rooms"`
}
