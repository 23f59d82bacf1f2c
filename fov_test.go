package fov

import (
	"testing"

	"github.com/lixenwraith/fov/grid"
)

// newTestScan wires a probe over a parsed raster into fresh settings.
func newTestScan(t *testing.T, shape Shape, raster ...string) (*Settings, *grid.Probe) {
	t.Helper()
	m, err := grid.Parse(raster...)
	if err != nil {
		t.Fatalf("Failed to parse raster: %v", err)
	}
	p := grid.NewProbe(m)
	s := New()
	s.SetShape(shape)
	s.SetOpacityTest(p.OpacityTest)
	s.SetApplyLighting(p.ApplyLighting)
	return s, p
}

func checkCounts(t *testing.T, p *grid.Probe, wantApplied, wantQueried []string) {
	t.Helper()
	if want := grid.MustParseCountMap(wantApplied...); !p.Applied.Equal(want) {
		t.Errorf("Apply counts mismatch\nexpected:\n%sgot:\n%s", want, p.Applied)
	}
	if wantQueried != nil {
		if want := grid.MustParseCountMap(wantQueried...); !p.Queried.Equal(want) {
			t.Errorf("Opacity query counts mismatch\nexpected:\n%sgot:\n%s", want, p.Queried)
		}
	}
}

// The square-shape reference cases: apply counts prove each visible
// cell is reported exactly once, query counts pin down the octant
// walk itself (axis cells are tested by both flanking octants,
// diagonals by one).
func TestCircleSquareFixtures(t *testing.T) {
	tests := []struct {
		name        string
		raster      []string
		wantApplied []string
		wantQueried []string
	}{
		{
			name: "Open field",
			raster: []string{
				"..........",
				"..........",
				"..........",
				"..........",
				"..........",
				"....@.....",
				"..........",
				"..........",
				"..........",
				"..........",
			},
			wantApplied: []string{
				"0000000000",
				"0000000000",
				"0111111100",
				"0111111100",
				"0111111100",
				"0111011100",
				"0111111100",
				"0111111100",
				"0111111100",
				"0000000000",
			},
			wantQueried: []string{
				"0000000000",
				"0000000000",
				"0111211100",
				"0111211100",
				"0111211100",
				"0222022200",
				"0111211100",
				"0111211100",
				"0111211100",
				"0000000000",
			},
		},
		{
			name: "Enclosed by walls",
			raster: []string{
				"..........",
				"..........",
				"..........",
				"..........",
				"...###....",
				"...#@#....",
				"...###....",
				"..........",
				"..........",
				"..........",
			},
			wantApplied: []string{
				"0000000000",
				"0000000000",
				"0000000000",
				"0000000000",
				"0001110000",
				"0001010000",
				"0001110000",
				"0000000000",
				"0000000000",
				"0000000000",
			},
			wantQueried: []string{
				"0000000000",
				"0000000000",
				"0000000000",
				"0000000000",
				"0001210000",
				"0002020000",
				"0001210000",
				"0000000000",
				"0000000000",
				"0000000000",
			},
		},
		{
			name: "Wall row above",
			raster: []string{
				"..........",
				"..........",
				"..........",
				".....#####",
				"##########",
				"....@.....",
				"..........",
				"..........",
				"..........",
				"..........",
			},
			wantApplied: []string{
				"0000000000",
				"0000000000",
				"0000000000",
				"0000000000",
				"0111111100",
				"0111011100",
				"0111111100",
				"0111111100",
				"0111111100",
				"0000000000",
			},
			wantQueried: []string{
				"0000000000",
				"0000000000",
				"0000000000",
				"0000000000",
				"0111211100",
				"0222022200",
				"0111211100",
				"0111211100",
				"0111211100",
				"0000000000",
			},
		},
		{
			name: "Wall run east",
			raster: []string{
				"..........",
				"..........",
				"..........",
				"..........",
				"..........",
				"....@####.",
				"......###.",
				"..........",
				"..........",
				"..........",
			},
			wantApplied: []string{
				"0000000000",
				"0000000000",
				"0111111100",
				"0111111000",
				"0111110000",
				"0111010000",
				"0111110000",
				"0111111000",
				"0111111100",
				"0000000000",
			},
			wantQueried: []string{
				"0000000000",
				"0000000000",
				"0111211100",
				"0111211000",
				"0111210000",
				"0222020000",
				"0111210000",
				"0111211000",
				"0111211100",
				"0000000000",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, p := newTestScan(t, Square, tt.raster...)
			s.Circle(nil, nil, 4, 5, 3)
			checkCounts(t, p, tt.wantApplied, tt.wantQueried)
		})
	}
}

// A wall directly beside the source must light up along its whole
// visible face, while everything behind it stays dark.
func TestWallFaceLighting(t *testing.T) {
	raster := []string{
		"..............................",
		"##############################",
		"@.............................",
		"..............................",
	}
	s, p := newTestScan(t, Square, raster...)
	s.Circle(nil, nil, 0, 2, 40)
	checkCounts(t, p,
		[]string{
			"000000000000000000000000000000",
			"111111111111111111111111111111",
			"011111111111111111111111111111",
			"111111111111111111111111111111",
		},
		[]string{
			"000000000000000000000000000000",
			"211111111111111111111111111111",
			"022222222222222222222222222222",
			"211111111111111111111111111111",
		})
}

// NoApply suppresses the apply callback for opaque cells without
// disturbing the walk: transparent cells and opacity queries are
// unchanged.
func TestOpaqueNoApply(t *testing.T) {
	t.Run("Enclosing ring goes dark", func(t *testing.T) {
		raster := []string{
			"..........",
			"..........",
			"..........",
			"..........",
			"...###....",
			"...#@#....",
			"...###....",
			"..........",
			"..........",
			"..........",
		}
		s, p := newTestScan(t, Square, raster...)
		s.SetOpaqueApply(NoApply)
		s.Circle(nil, nil, 4, 5, 3)
		checkCounts(t, p,
			[]string{
				"0000000000",
				"0000000000",
				"0000000000",
				"0000000000",
				"0000000000",
				"0000000000",
				"0000000000",
				"0000000000",
				"0000000000",
				"0000000000",
			},
			[]string{
				"0000000000",
				"0000000000",
				"0000000000",
				"0000000000",
				"0001210000",
				"0002020000",
				"0001210000",
				"0000000000",
				"0000000000",
				"0000000000",
			})
	})

	t.Run("Transparent cells unchanged", func(t *testing.T) {
		raster := []string{
			"..............................",
			"##############################",
			"@.............................",
			"..............................",
		}
		s, p := newTestScan(t, Square, raster...)
		s.SetOpaqueApply(NoApply)
		s.Circle(nil, nil, 0, 2, 40)
		checkCounts(t, p,
			[]string{
				"000000000000000000000000000000",
				"000000000000000000000000000000",
				"011111111111111111111111111111",
				"111111111111111111111111111111",
			}, nil)
	})
}

func TestSourceNeverApplied(t *testing.T) {
	open := []string{
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
	}
	for _, shape := range []Shape{Square, Circle, CirclePrecalculate, Octagon} {
		s, p := newTestScan(t, shape, open...)
		s.Circle(nil, nil, 7, 7, 6)
		if got := p.Applied.At(7, 7); got != 0 {
			t.Errorf("Shape %d: expected source apply count 0, got %d", shape, got)
		}
		if p.Applied.Total() == 0 {
			t.Errorf("Shape %d: expected some cells applied", shape)
		}
	}
}

func TestRadiusZeroLightsNothing(t *testing.T) {
	raster := []string{
		".....",
		".....",
		"..@..",
		".....",
		".....",
	}
	for _, radius := range []int{0, -1} {
		s, p := newTestScan(t, Square, raster...)
		s.Circle(nil, nil, 2, 2, radius)
		if got := p.Applied.Total(); got != 0 {
			t.Errorf("Radius %d: expected 0 applied cells, got %d", radius, got)
		}
		s.Beam(nil, nil, 2, 2, radius, East, 90)
		if got := p.Applied.Total(); got != 0 {
			t.Errorf("Radius %d beam: expected 0 applied cells, got %d", radius, got)
		}
	}
}

// Offsets handed to the apply callback must match the cell position
// relative to the source, and the map/source payloads must arrive
// verbatim.
func TestApplyOffsetsAndPayloads(t *testing.T) {
	m := grid.MustParse(
		".......",
		".......",
		"...@...",
		".......",
		".......",
	)
	type mark struct{ key int }
	srcTag := &mark{7}

	s := New()
	s.SetOpacityTest(func(payload any, x, y int) bool {
		if payload != m {
			t.Fatalf("Expected map payload forwarded to opacity test")
		}
		return m.Opaque(x, y)
	})
	s.SetApplyLighting(func(payload any, x, y, dx, dy int, src any) {
		if payload != m {
			t.Errorf("Expected map payload forwarded to apply")
		}
		if src != srcTag {
			t.Errorf("Expected source payload forwarded to apply")
		}
		if x-3 != dx || y-2 != dy {
			t.Errorf("Cell (%d,%d): expected offset (%d,%d), got (%d,%d)", x, y, x-3, y-2, dx, dy)
		}
	})
	s.Circle(m, srcTag, 3, 2, 2)
}

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{East, "E"}, {Southeast, "SE"}, {South, "S"}, {Southwest, "SW"},
		{West, "W"}, {Northwest, "NW"}, {North, "N"}, {Northeast, "NE"},
		{Direction(12), "?"},
	}
	for _, tt := range tests {
		if got := tt.dir.String(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}
