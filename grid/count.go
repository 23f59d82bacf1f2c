package grid

import (
	"fmt"
	"strings"
)

// CountMap tallies events per cell. The test suite uses a pair of
// them to assert exactly how often the engine queried and applied
// each cell.
type CountMap struct {
	W, H   int
	counts []int
}

// NewCountMap returns a zeroed w×h counter grid.
func NewCountMap(w, h int) *CountMap {
	return &CountMap{W: w, H: h, counts: make([]int, w*h)}
}

// ParseCountMap builds expected counts from top-down digit rows.
func ParseCountMap(rows ...string) (*CountMap, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse counts: no rows")
	}
	c := NewCountMap(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != c.W {
			return nil, fmt.Errorf("parse counts: row %d is %d wide, want %d", y, len(row), c.W)
		}
		for x := 0; x < c.W; x++ {
			d := row[x]
			if d < '0' || d > '9' {
				return nil, fmt.Errorf("parse counts: bad digit %q at (%d,%d)", d, x, y)
			}
			c.counts[y*c.W+x] = int(d - '0')
		}
	}
	return c, nil
}

// MustParseCountMap is ParseCountMap for well-formed fixtures.
func MustParseCountMap(rows ...string) *CountMap {
	c, err := ParseCountMap(rows...)
	if err != nil {
		panic(err)
	}
	return c
}

// Increment adds one to the counter at (x, y). Off-map is ignored.
func (c *CountMap) Increment(x, y int) {
	if x >= 0 && x < c.W && y >= 0 && y < c.H {
		c.counts[y*c.W+x]++
	}
}

// At returns the counter at (x, y), or zero off-map.
func (c *CountMap) At(x, y int) int {
	if x < 0 || x >= c.W || y < 0 || y >= c.H {
		return 0
	}
	return c.counts[y*c.W+x]
}

// Total returns the sum of all counters.
func (c *CountMap) Total() int {
	sum := 0
	for _, n := range c.counts {
		sum += n
	}
	return sum
}

// Equal reports whether two counter grids match cell for cell.
func (c *CountMap) Equal(o *CountMap) bool {
	if c.W != o.W || c.H != o.H {
		return false
	}
	for i, n := range c.counts {
		if n != o.counts[i] {
			return false
		}
	}
	return true
}

// String renders the counters top-down as digit rows; counts past 9
// print as '+' to keep rows aligned.
func (c *CountMap) String() string {
	var b strings.Builder
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			n := c.counts[y*c.W+x]
			if n > 9 {
				b.WriteByte('+')
			} else {
				b.WriteByte(byte('0' + n))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Probe wires a Map into the engine's two callbacks and tallies every
// invocation, mirroring how a game hooks its map up while making the
// engine's behaviour observable cell by cell.
type Probe struct {
	Map     *Map
	Applied *CountMap // apply callback invocations
	Queried *CountMap // opacity callback invocations
}

// NewProbe returns a probe over m with zeroed counters.
func NewProbe(m *Map) *Probe {
	return &Probe{
		Map:     m,
		Applied: NewCountMap(m.W, m.H),
		Queried: NewCountMap(m.W, m.H),
	}
}

// OpacityTest matches fov.OpacityTest. Off-map cells report opaque
// without being counted, same as cells outside any real map would.
func (p *Probe) OpacityTest(_ any, x, y int) bool {
	if !p.Map.OnMap(x, y) {
		return true
	}
	p.Queried.Increment(x, y)
	return p.Map.Opaque(x, y)
}

// ApplyLighting matches fov.ApplyLighting, counting and marking lit
// cells.
func (p *Probe) ApplyLighting(_ any, x, y, _, _ int, _ any) {
	if !p.Map.OnMap(x, y) {
		return
	}
	p.Applied.Increment(x, y)
	p.Map.SetSeen(x, y)
}
