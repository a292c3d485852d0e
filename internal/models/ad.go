package models

// Slot names one of the fixed ad placements on a page
type Slot string

const (
	SlotBanner  Slot = "banner"
	SlotSide    Slot = "side"
	SlotOverlay Slot = "overlay"
)

// Slots lists every placement in display order
var Slots = []Slot{SlotBanner, SlotSide, SlotOverlay}

// AdEntry is a single ad image with an optional click-through link
type AdEntry struct {
	Slot Slot   `json:"slot"`
	File string `json:"file"`
	Path string `json:"path"`
	Link string `json:"link,omitempty"`
}

// SlotState is what we send to the client for one placement
type SlotState struct {
	Slot    Slot      `json:"slot"`
	Entries []AdEntry `json:"entries"`
	Current *AdEntry  `json:"current,omitempty"`
	Visible bool      `json:"visible"`
}
