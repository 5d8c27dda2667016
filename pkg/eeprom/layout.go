// pkg/eeprom/layout.go

package eeprom

// One flash block holds the whole store:
//
//	base + 0: marker (16-bit), Marker when the page is initialized
//	base + 2: reserved (16-bit), always zero
//	base + 4: up to MaxVars records, 6 bytes each: id, value, checksum
//
// Ids are 8-bit but stored widened to a half-word. A record whose id cell
// reads as the erased pattern ends the live run.
const (
	// Marker is the sentinel proving the page holds initialized storage.
	Marker uint16 = 0x5A5A

	// MaxVars is the fixed record capacity of the page.
	MaxVars = 10

	markerOffset   = 0
	reservedOffset = 2
	slotsOffset    = 4
	slotSize       = 6

	// Footprint is the engine's span within the erase block in bytes.
	Footprint = slotsOffset + MaxVars*slotSize
)

// checksum guards one stored record. Mismatch makes the record invisible
// until the next full rewrite.
func checksum(id, value uint16) uint16 {
	return id ^ value
}
