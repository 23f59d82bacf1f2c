package grid

import (
	"math/rand"
	"time"
)

// MazeConfig parameterises the maze generator.
type MazeConfig struct {
	Width, Height int

	// Braiding: 0.0 (perfect maze, all dead ends kept) to 1.0 (every
	// dead end opened into a loop where topology allows).
	Braiding float64

	Seed int64 // Optional (0 = time-based)
}

type point struct {
	x, y int
}

// Maze generates a corridor maze with a recursive backtracker, walls
// everywhere the carve never reached. Dimensions are rounded down to
// odd, with a minimum of 3, so the outer border stays solid. Deterministic for a fixed
// non-zero seed.
func Maze(cfg MazeConfig) *Map {
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	m := NewMap(cols, rows)
	for i := range m.tiles {
		m.tiles[i] = Wall
	}

	carve(m, point{1, 1}, rng)

	if cfg.Braiding > 0 {
		braid(m, cfg.Braiding, rng)
	}

	return m
}

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}

// carve runs the recursive backtracker from start, opening wall cells
// two steps at a time so corridors stay one cell wide.
func carve(m *Map, start point, rng *rand.Rand) {
	stack := []point{start}
	m.SetTile(start.x, start.y, Floor)

	dirs := []point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]point, 0, 4)

		for _, d := range dirs {
			nx, ny := curr.x+d.x, curr.y+d.y
			// Leave a 1-cell border of wall
			if nx > 0 && nx < m.W-1 && ny > 0 && ny < m.H-1 && m.Tile(nx, ny) == Wall {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) > 0 {
			d := candidates[rng.Intn(len(candidates))]
			m.SetTile(curr.x+d.x/2, curr.y+d.y/2, Floor)
			m.SetTile(curr.x+d.x, curr.y+d.y, Floor)
			stack = append(stack, point{curr.x + d.x, curr.y + d.y})
		} else {
			stack = stack[:len(stack)-1]
		}
	}
}

// braid opens a fraction of dead ends into loops. A node is a dead end
// if it has exactly one floor neighbour; opening knocks out one of the
// walls separating it from an adjacent corridor.
func braid(m *Map, probability float64, rng *rand.Rand) {
	checkDirs := []point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	jumpDirs := []point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

	for y := 1; y < m.H-1; y += 2 {
		for x := 1; x < m.W-1; x += 2 {
			if m.Tile(x, y) == Wall {
				continue
			}

			exits := 0
			for _, d := range checkDirs {
				if m.Tile(x+d.x, y+d.y) == Floor {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates := make([]point, 0, 4)
			for _, jd := range jumpDirs {
				nx, ny := x+jd.x, y+jd.y
				wx, wy := x+jd.x/2, y+jd.y/2
				if m.OnMap(nx, ny) && m.Tile(nx, ny) == Floor && m.Tile(wx, wy) == Wall {
					candidates = append(candidates, point{wx, wy})
				}
			}
			if len(candidates) > 0 {
				c := candidates[rng.Intn(len(candidates))]
				m.SetTile(c.x, c.y, Floor)
			}
		}
	}
}
