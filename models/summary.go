package models

// Summary is the display view of the room list.
// Empty is set instead of a table when there are no rooms.
type Summary struct {
	Rooms      []Room  `json:"rooms"`
	Empty      bool    `json:"empty"`
	TotalArea  float64 `json:"totalArea"`
	TotalLabel string  `json:"totalLabel"`
}
