package model

// RoomDesign is the static, game-wide attribute record for one room type.
// Field names match the keys used by the game's design catalog dumps.
type RoomDesign struct {
	RoomType          string `json:"RoomType"`
	RoomShortName     string `json:"RoomShortName"`
	Level             int    `json:"Level"`
	Rows              int    `json:"Rows"`
	Columns           int    `json:"Columns"`
	Capacity          int    `json:"Capacity"`
	MaxSystemPower    int    `json:"MaxSystemPower"`
	MaxPowerGenerated int    `json:"MaxPowerGenerated"`
}

// ShipDesign is the static attribute record for one ship type.
type ShipDesign struct {
	Level int `json:"ship_level"`
}

// DesignSource resolves a room design id to its static design record.
type DesignSource interface {
	Lookup(designID int) (RoomDesign, bool)
}
