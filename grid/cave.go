package grid

import (
	"math/rand"
	"time"
)

// CaveConfig parameterises the cellular-automata cave generator.
type CaveConfig struct {
	Width, Height int

	// FillRatio is the fraction of cells seeded as wall before
	// smoothing, 0.0 to 1.0. Around 0.55 gives connected caverns.
	FillRatio float64

	// SmoothPasses applies the 4/5 neighbour rule: a wall with fewer
	// than four wall neighbours erodes, a floor with more than four
	// wall neighbours fills.
	SmoothPasses int

	Seed int64 // Optional (0 = time-based)
}

// Cave generates a cave map: random wall fill followed by
// game-of-life style smoothing. Deterministic for a fixed non-zero
// seed.
func Cave(cfg CaveConfig) *Map {
	if cfg.Width < 3 {
		cfg.Width = 3
	}
	if cfg.Height < 3 {
		cfg.Height = 3
	}
	if cfg.FillRatio <= 0 {
		cfg.FillRatio = 0.55
	}
	if cfg.SmoothPasses <= 0 {
		cfg.SmoothPasses = 1
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	m := NewMap(cfg.Width, cfg.Height)

	for n := 0; n < int(float64(cfg.Width*cfg.Height)*cfg.FillRatio); n++ {
		m.SetTile(rng.Intn(cfg.Width), rng.Intn(cfg.Height), Wall)
	}

	for pass := 0; pass < cfg.SmoothPasses; pass++ {
		next := make([]byte, len(m.tiles))
		copy(next, m.tiles)
		for y := 0; y < m.H; y++ {
			for x := 0; x < m.W; x++ {
				walls := wallNeighbours(m, x, y)
				switch {
				case m.Opaque(x, y) && walls < 4:
					next[y*m.W+x] = Floor
				case !m.Opaque(x, y) && walls > 4:
					next[y*m.W+x] = Wall
				}
			}
		}
		m.tiles = next
	}

	// Dividing wall across the left half at mid-height, so every cave
	// has at least one long straight occluder to cast shadows against.
	for x := 0; x < m.W/2; x++ {
		m.SetTile(x, m.H/2, Wall)
	}

	return m
}

// wallNeighbours counts opaque cells among the 8 neighbours of (x, y).
// Off-map neighbours count as wall, which keeps cave edges closed.
func wallNeighbours(m *Map, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if m.Opaque(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}
