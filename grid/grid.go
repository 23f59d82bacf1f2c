// Package grid provides tile rasters for exercising and rendering
// field-of-view scans: parsing text maps, per-cell counters for
// callback accounting, and seeded map generators for the demo and the
// test suite. Rasters are screen-oriented: row 0 is the top, y grows
// downward.
package grid

import (
	"fmt"
	"strings"
)

// Tile values used by the text format.
const (
	Floor  = byte('.')
	Wall   = byte('#')
	Player = byte('@')
)

// Map is a bounded tile raster with per-cell visibility memory: seen
// marks cells lit by the current scan, remembered sticks once a cell
// has ever been seen (the demo's fog of war).
type Map struct {
	W, H int

	tiles      []byte
	seen       []bool
	remembered []bool
}

// NewMap returns an all-floor map of the given dimensions.
func NewMap(w, h int) *Map {
	m := &Map{
		W:          w,
		H:          h,
		tiles:      make([]byte, w*h),
		seen:       make([]bool, w*h),
		remembered: make([]bool, w*h),
	}
	for i := range m.tiles {
		m.tiles[i] = Floor
	}
	return m
}

// Parse builds a map from top-down raster rows. '#' is opaque, every
// other byte is stored as-is and treated as transparent. All rows must
// have equal length.
func Parse(rows ...string) (*Map, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse map: no rows")
	}
	m := NewMap(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != m.W {
			return nil, fmt.Errorf("parse map: row %d is %d wide, want %d", y, len(row), m.W)
		}
		for x := 0; x < m.W; x++ {
			m.tiles[y*m.W+x] = row[x]
		}
	}
	return m, nil
}

// MustParse is Parse for fixtures known to be well formed.
func MustParse(rows ...string) *Map {
	m, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return m
}

// OnMap reports whether (x, y) lies inside the raster.
func (m *Map) OnMap(x, y int) bool {
	return x >= 0 && x < m.W && y >= 0 && y < m.H
}

// Opaque reports whether (x, y) blocks light. Off-map cells are
// opaque, the convention conforming opacity callbacks must follow.
func (m *Map) Opaque(x, y int) bool {
	return !m.OnMap(x, y) || m.tiles[y*m.W+x] == Wall
}

// Tile returns the tile byte at (x, y), or Wall off-map.
func (m *Map) Tile(x, y int) byte {
	if !m.OnMap(x, y) {
		return Wall
	}
	return m.tiles[y*m.W+x]
}

// SetTile overwrites the tile at (x, y). Off-map is ignored.
func (m *Map) SetTile(x, y int, tile byte) {
	if m.OnMap(x, y) {
		m.tiles[y*m.W+x] = tile
	}
}

// SetSeen marks (x, y) seen and remembered. Off-map is ignored.
func (m *Map) SetSeen(x, y int) {
	if m.OnMap(x, y) {
		m.seen[y*m.W+x] = true
		m.remembered[y*m.W+x] = true
	}
}

// Seen reports whether (x, y) was lit by the current scan.
func (m *Map) Seen(x, y int) bool {
	return m.OnMap(x, y) && m.seen[y*m.W+x]
}

// Remembered reports whether (x, y) has ever been seen.
func (m *Map) Remembered(x, y int) bool {
	return m.OnMap(x, y) && m.remembered[y*m.W+x]
}

// ClearSeen resets the seen flags, keeping remembered intact. Called
// before each scan so seen reflects exactly the current field of view.
func (m *Map) ClearSeen() {
	for i := range m.seen {
		m.seen[i] = false
	}
}

// Find returns the coordinates of the first cell holding tile, in
// row-major order.
func (m *Map) Find(tile byte) (x, y int, ok bool) {
	for i, t := range m.tiles {
		if t == tile {
			return i % m.W, i / m.W, true
		}
	}
	return 0, 0, false
}

// String renders the raster top-down, one row per line.
func (m *Map) String() string {
	var b strings.Builder
	for y := 0; y < m.H; y++ {
		b.Write(m.tiles[y*m.W : (y+1)*m.W])
		b.WriteByte('\n')
	}
	return b.String()
}
