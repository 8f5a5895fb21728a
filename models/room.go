package models

// Standard opening sizes in square feet.
const (
	DoorArea   = 21
	WindowArea = 15
)

// Input bounds. Anything larger is a typo, not a room.
const (
	MaxDimension = 10000
	MaxOpenings  = 1000
	MaxCoats     = 100
)

// RoomInput is what a user submits for one room, from either the form or the menu.
// Form tags bind the add-room page, json tags bind the API.
type RoomInput struct {
	Name    string  `form:"name" json:"name"`
	Length  float64 `form:"length" json:"length" binding:"gte=0,lte=10000"`
	Width   float64 `form:"width" json:"width" binding:"gte=0,lte=10000"`
	Height  float64 `form:"height" json:"height" binding:"gte=0,lte=10000"`
	Doors   int     `form:"doors" json:"doors" binding:"gte=0,lte=1000"`
	Windows int     `form:"windows" json:"windows" binding:"gte=0,lte=1000"`
	Coats   int     `form:"coats" json:"coats" binding:"gte=1,lte=100"`
}

// RoomMetrics holds the derived areas, each rounded to 2 decimals.
type RoomMetrics struct {
	WallArea           float64 `json:"wallArea"`
	CeilingArea        float64 `json:"ceilingArea"`
	OpeningArea        float64 `json:"openingArea"`
	PaintableArea      float64 `json:"paintableArea"`
	TotalAreaWithCoats float64 `json:"totalAreaWithCoats"`
}

// Room is an accepted entry. It is never modified after creation.
type Room struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Length  float64 `json:"length"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Doors   int     `json:"doors"`
	Windows int     `json:"windows"`
	Coats   int     `json:"coats"`

	RoomMetrics
}
