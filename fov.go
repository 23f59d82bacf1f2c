// Package fov computes field of view on 2D tile maps using recursive
// shadowcasting. The engine is map-agnostic: it reads opacity and
// reports lit cells exclusively through two caller-supplied callbacks,
// so it works with any grid representation and never assumes a finite
// map. Off-map coordinates must be reported opaque by the opacity
// callback.
//
// A scan is synchronous and single-threaded. A Settings value owns
// scratch buffers that are mutated during a scan, so one Settings must
// not be shared by two scans running at the same time; distinct
// Settings values are independent.
package fov

// Shape bounds the region of cells a scan may light.
type Shape int

const (
	// Square limits the scan to a (2R+1)² square (Chebyshev radius).
	Square Shape = iota
	// Circle limits the scan to a Euclidean disc, computed on the fly.
	Circle
	// CirclePrecalculate is Circle with per-radius row extents computed
	// once and cached on the Settings. Costs memory per distinct radius,
	// saves the per-row square root on every scan after the first.
	CirclePrecalculate
	// Octagon limits the scan to a square with 45°-clipped corners.
	Octagon
)

// OpaqueApply selects the wall-face lighting policy: whether the
// opaque cell that terminates a ray is itself reported lit.
type OpaqueApply int

const (
	// Apply reports opaque cells facing the source as lit, so walls are
	// visible surfaces rather than invisible edges.
	Apply OpaqueApply = iota
	// NoApply suppresses the apply callback for opaque cells.
	NoApply
)

// Direction is one of the eight compass directions a Beam can point.
// Coordinates are screen-oriented: x grows east, y grows south.
type Direction int

const (
	East Direction = iota
	Southeast
	South
	Southwest
	West
	Northwest
	North
	Northeast
)

var directionNames = [8]string{"E", "SE", "S", "SW", "W", "NW", "N", "NE"}

func (d Direction) String() string {
	if d < 0 || d > 7 {
		return "?"
	}
	return directionNames[d]
}

func (d Direction) next() Direction     { return (d + 1) & 7 }
func (d Direction) previous() Direction { return (d + 7) & 7 }
func (d Direction) diagonal() bool      { return d&1 == 1 }

// OpacityTest reports whether the cell at (x, y) blocks light.
// Implementations must return true for off-map coordinates; the engine
// has no notion of map bounds. The same cell may be queried more than
// once per scan (adjacent octants share boundary cells), so the test
// should be idempotent.
type OpacityTest func(m any, x, y int) bool

// ApplyLighting receives each lit cell exactly once per scan.
// (dx, dy) is the signed offset from the scan source; m and src are
// the opaque payloads given to the scan, forwarded verbatim.
type ApplyLighting func(m any, x, y, dx, dy int, src any)

// Settings configures scans: the two callbacks, the shape, the
// wall-face policy, and the owned scratch buffers that grow with the
// largest radius seen and are reused by later scans.
type Settings struct {
	shape       Shape
	opaqueApply OpaqueApply
	opaque      OpacityTest
	apply       ApplyLighting

	// slopes holds one start-slope stop per depth of the active octant
	// descent; grown to the scan radius before any octant runs.
	slopes []float64

	// circleExtents caches per-row column extents keyed by radius-1,
	// filled lazily by CirclePrecalculate and never evicted.
	circleExtents [][]int
}

// New returns settings with the default Square shape and wall-face
// lighting enabled. Both callbacks must be set before the first scan.
func New() *Settings {
	return &Settings{shape: Square, opaqueApply: Apply}
}

// SetShape selects the shape bounding subsequent scans.
func (s *Settings) SetShape(shape Shape) { s.shape = shape }

// SetOpaqueApply selects the wall-face lighting policy for subsequent
// scans.
func (s *Settings) SetOpaqueApply(policy OpaqueApply) { s.opaqueApply = policy }

// OpaqueApply reports the current wall-face lighting policy.
func (s *Settings) OpaqueApply() OpaqueApply { return s.opaqueApply }

// SetOpacityTest installs the opacity callback.
func (s *Settings) SetOpacityTest(fn OpacityTest) { s.opaque = fn }

// SetApplyLighting installs the lighting callback.
func (s *Settings) SetApplyLighting(fn ApplyLighting) { s.apply = fn }

// Circle scans all eight octants around (px, py) out to radius,
// reporting every visible cell through the apply callback. The source
// cell itself is not reported; it is unconditionally visible and
// rendering it is the host's concern. Cells are applied at most once
// per scan. A radius of zero or less lights nothing.
func (s *Settings) Circle(m, src any, px, py, radius int) {
	d := scan{m: m, src: src, px: px, py: py, radius: radius}
	s.growSlopes(radius)
	for i := range octants {
		s.scanOctant(&d, 1, 0.0, 1.0, &octants[i])
	}
}

// Beam scans a wedge of total angular width angle degrees centred on
// dir. Each side of the centre ray spans half the angle, so the full
// angle is represented on the raster. An angle of 360 or more is
// equivalent to Circle; an angle of zero or less lights nothing. Slope
// ties at the wedge boundary round toward the interior, so the centre
// ray is always lit.
func (s *Settings) Beam(m, src any, px, py, radius int, dir Direction, angle float64) {
	if angle <= 0.0 {
		return
	}
	if angle >= 360.0 {
		s.Circle(m, src, px, py, radius)
		return
	}
	d := scan{m: m, src: src, px: px, py: py, radius: radius}
	s.growSlopes(radius)

	// The wedge is assembled from octant pairs worked outward from the
	// centre in 45° steps. a is the half-angle in units of 45°: a beam
	// of 180° has a == 2, covering the two flanking octants fully and
	// reaching one ring further on each side.
	a := angle / 90.0
	diag := dir.diagonal()
	lo, hi := dir, dir.next()
	for ring := 0; ring < 4; ring++ {
		if ring > 0 && a <= float64(ring) {
			break
		}
		var start, end float64
		if (ring&1 == 0) == diag {
			start, end = clamp(float64(ring+1)-a, 0.0, 1.0), 1.0
		} else {
			start, end = 0.0, clamp(a-float64(ring), 0.0, 1.0)
		}
		s.scanOctant(&d, 1, start, end, &octants[lo])
		s.scanOctant(&d, 1, start, end, &octants[hi])
		lo, hi = lo.previous(), hi.next()
	}
}

// growSlopes extends the slope-stop buffer to one slot per depth.
// The buffer never shrinks; repeated scans at or below the largest
// radius seen allocate nothing.
func (s *Settings) growSlopes(radius int) {
	if radius > len(s.slopes) {
		grown := make([]float64, radius)
		copy(grown, s.slopes)
		s.slopes = grown
	}
}

// clamp limits x to [a, b].
func clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}
