package models

// Geometry is the last known size and position of the main window
type Geometry struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	X      int `json:"x"`
	Y      int `json:"y"`
}

// Column is the persisted display state of one habit table column
type Column struct {
	Width    int `json:"width"`
	Position int `json:"position"`
}

// Layout is the persisted presentation state
type Layout struct {
	Window  Geometry          `json:"window"`
	Columns map[string]Column `json:"columns"`
}
