package fov

/*
   Octant layout around the source @, with the Direction whose beam
   each octant serves:

        \ N  | NE /
      NW \   |   / E
          \  |  /
      -------@-------
          /  |  \
       W /   |   \ SE
        / SW | S  \

   Within an octant, depth counts rows outward from the source along
   the octant's major axis and col counts 0..depth across the row. The
   four coefficients map (depth, col) to a world offset. Cells on an
   axis are walked by two adjacent octants and cells on a diagonal by
   the two octants of one quadrant; the edge and diag flags say which
   octant owns the shared cells, so each is applied exactly once. A
   non-owning octant still tests opacity on its axis (the shadow must
   propagate on both sides of a wall sitting on the axis) but skips its
   diagonal outright.
*/

type octant struct {
	xx, xy, yx, yy int
	edge, diag     bool
}

// Indexed by Direction: octants[d] is the wedge a beam pointing d
// enters first. Diagonals belong to the depth-is-x octants (E, SE, W,
// NW), axes to the cardinal-indexed ones.
var octants = [8]octant{
	East:      {1, 0, 0, -1, true, true},
	Southeast: {1, 0, 0, 1, false, true},
	South:     {0, 1, 1, 0, true, false},
	Southwest: {0, -1, 1, 0, false, false},
	West:      {-1, 0, 0, 1, true, true},
	Northwest: {-1, 0, 0, -1, false, true},
	North:     {0, -1, -1, 0, true, false},
	Northeast: {0, 1, -1, 0, false, false},
}

// scan carries the per-call parameters shared by every octant of one
// Circle or Beam invocation.
type scan struct {
	m, src any
	px, py int
	radius int
}

// slope returns dy/dx, the tangent of a ray through a sub-cell corner.
// Guarded against a zero run; callers only pass half-cell offsets so
// the guard never fires in practice.
func slope(dx, dy float64) float64 {
	if dx == 0.0 {
		return 0.0
	}
	return dy / dx
}

// Values of the blocked-run tracker. blockedNone means no cell of the
// current row has been examined yet.
const (
	blockedNone = iota - 1
	blockedNo
	blockedYes
)

// scanOctant walks one octant row by row from depth outward,
// maintaining the visible slope wedge [startSlope, endSlope] with
// 0 on the octant's axis and 1 on its diagonal.
//
// Within a row, a transparent→opaque transition starts a shadow: the
// still-visible sub-wedge past the new shadow is handed to a recursive
// call bounded by the near corner of the blocking cell, and the walk
// continues. An opaque→transparent transition re-opens the wedge at
// the corner where the blocking run ended. A row that finishes blocked
// ends the descent. Recursion depth is bounded by the radius and every
// recursive call strictly narrows the wedge.
//
// The current start slope of each depth lives in s.slopes rather than
// a local: slot depth-1 is written on entry, updated as shadows close,
// and read for both recursive calls. Deeper calls only touch deeper
// slots, so the buffer doubles as the stop record of the active
// descent path.
func (s *Settings) scanOctant(d *scan, depth int, startSlope, endSlope float64, oct *octant) {
	if depth > d.radius {
		return
	}

	col0 := int(0.5 + float64(depth)*startSlope)
	col1 := int(0.5 + float64(depth)*endSlope)

	if h := s.rowExtent(depth, d.radius); col1 > h {
		if h == 0 {
			return
		}
		col1 = h
	}

	s.slopes[depth-1] = startSlope
	prev := blockedNone
	for col := col0; col <= col1; col++ {
		if col == depth && !oct.diag {
			// Shared diagonal, owned by the sibling octant.
			continue
		}
		x := d.px + depth*oct.xx + col*oct.xy
		y := d.py + depth*oct.yx + col*oct.yy

		if s.opaque(d.m, x, y) {
			if s.opaqueApply == Apply && (oct.edge || col > 0) {
				s.apply(d.m, x, y, x-d.px, y-d.py, d.src)
			}
			if prev == blockedNo {
				next := slope(float64(depth)+0.5, float64(col)-0.5)
				s.scanOctant(d, depth+1, s.slopes[depth-1], next, oct)
			}
			prev = blockedYes
		} else {
			if oct.edge || col > 0 {
				s.apply(d.m, x, y, x-d.px, y-d.py, d.src)
			}
			if prev == blockedYes {
				s.slopes[depth-1] = slope(float64(depth)-0.5, float64(col)-0.5)
			}
			prev = blockedNo
		}
	}

	if prev != blockedYes {
		s.scanOctant(d, depth+1, s.slopes[depth-1], endSlope, oct)
	}
}
