// Command fovdemo is an interactive field-of-view explorer: walk a
// generated cave or maze and watch the lit region follow, switching
// shapes, radii and beam wedges from the keyboard.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/fov"
	"github.com/lixenwraith/fov/grid"
)

type Game struct {
	screen        tcell.Screen
	width, height int

	m        *grid.Map
	settings *fov.Settings

	// Player / view state
	px, py       int
	radius       int
	angle        float64
	dir          fov.Direction
	beam         bool
	currentShape fov.Shape

	audioInit bool
}

func NewGame(cfg *Config) (*Game, error) {
	m, err := buildMap(&cfg.Map)
	if err != nil {
		return nil, err
	}

	shape, err := parseShape(cfg.View.Shape)
	if err != nil {
		return nil, err
	}

	settings := fov.New()
	settings.SetShape(shape)
	if !cfg.View.WallLighting {
		settings.SetOpaqueApply(fov.NoApply)
	}
	settings.SetOpacityTest(opacity)
	settings.SetApplyLighting(applyLighting)

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	g := &Game{
		screen:       screen,
		m:            m,
		settings:     settings,
		radius:       cfg.View.Radius,
		angle:        cfg.View.Angle,
		dir:          fov.East,
		beam:         cfg.View.Beam,
		currentShape: shape,
	}
	g.width, g.height = screen.Size()
	g.placePlayer()

	if cfg.Audio.Enabled {
		if err := g.initAudio(); err != nil {
			// Non-fatal, the demo runs fine without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}

	return g, nil
}

func buildMap(cfg *MapConfig) (*grid.Map, error) {
	switch cfg.Source {
	case "cave", "":
		return grid.Cave(grid.CaveConfig{
			Width:     cfg.Width,
			Height:    cfg.Height,
			FillRatio: cfg.Fill,
			Seed:      cfg.Seed,
		}), nil
	case "maze":
		return grid.Maze(grid.MazeConfig{
			Width:    cfg.Width,
			Height:   cfg.Height,
			Braiding: cfg.Braiding,
			Seed:     cfg.Seed,
		}), nil
	case "file":
		data, err := os.ReadFile(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("read map %s: %w", cfg.Path, err)
		}
		rows := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		return grid.Parse(rows...)
	default:
		return nil, fmt.Errorf("unknown map source %q", cfg.Source)
	}
}

// placePlayer puts the player on the '@' marker if the map has one,
// otherwise on the first transparent cell nearest the map centre.
func (g *Game) placePlayer() {
	if x, y, ok := g.m.Find(grid.Player); ok {
		g.px, g.py = x, y
		g.m.SetTile(x, y, grid.Floor)
		return
	}
	cx, cy := g.m.W/2, g.m.H/2
	for r := 0; r < g.m.W+g.m.H; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if !g.m.Opaque(cx+dx, cy+dy) {
					g.px, g.py = cx+dx, cy+dy
					return
				}
			}
		}
	}
	// Fully walled map: dig out the centre
	g.m.SetTile(cx, cy, grid.Floor)
	g.px, g.py = cx, cy
}

func (g *Game) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		g.audioInit = true
	}
	return err
}

// playBumpSound gives a short tone when the player walks into a wall.
func (g *Game) playBumpSound() {
	if !g.audioInit {
		return
	}
	sampleRate := beep.SampleRate(44100)
	duration := sampleRate.N(50 * time.Millisecond)
	sine, _ := generators.SineTone(sampleRate, 880)
	speaker.Play(beep.Take(duration, sine))
}

// move offsets the player by (dx, dy) with the original demo's beam
// steering: in beam mode the first press of a direction only turns the
// beam, pressing it again moves.
func (g *Game) move(dx, dy int, dir fov.Direction) {
	if !g.beam || g.dir == dir {
		nx, ny := g.px+dx, g.py+dy
		if g.m.Opaque(nx, ny) {
			g.playBumpSound()
		} else {
			g.px, g.py = nx, ny
		}
	}
	g.dir = dir
}

func (g *Game) scan() {
	g.m.ClearSeen()
	if g.beam {
		g.settings.Beam(g.m, nil, g.px, g.py, g.radius, g.dir, g.angle)
	} else {
		g.settings.Circle(g.m, nil, g.px, g.py, g.radius)
	}
	// The engine never reports the source; the player cell is visible
	// by definition.
	g.m.SetSeen(g.px, g.py)
}

func (g *Game) draw() {
	g.scan()
	g.screen.Clear()

	seenStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)

	for y := 0; y < g.m.H && y < g.height-1; y++ {
		for x := 0; x < g.m.W && x < g.width; x++ {
			switch {
			case g.m.Seen(x, y):
				g.screen.SetContent(x, y, rune(g.m.Tile(x, y)), nil, seenStyle)
			case g.m.Remembered(x, y):
				g.screen.SetContent(x, y, rune(g.m.Tile(x, y)), nil, dimStyle)
			}
		}
	}

	playerStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	g.screen.SetContent(g.px, g.py, '@', nil, playerStyle)

	g.drawStatus()
	g.screen.Show()
}

func (g *Game) drawStatus() {
	mode := "circle"
	if g.beam {
		mode = fmt.Sprintf("beam %s %.0fdeg", g.dir, g.angle)
	}
	wall := "on"
	if g.settings.OpaqueApply() == fov.NoApply {
		wall = "off"
	}
	status := fmt.Sprintf(" r=%d shape=%s mode=%s walls=%s  [=/- radius  ]/[ angle  scpo shape  a walls  b beam  q quit]",
		g.radius, shapeName(g.shape()), mode, wall)
	style := tcell.StyleDefault.Reverse(true)
	y := g.height - 1
	for x := 0; x < g.width; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		g.screen.SetContent(x, y, r, nil, style)
	}
}

// shape tracks the last shape set; Settings does not expose it, so the
// game remembers its own.
func (g *Game) shape() fov.Shape { return g.currentShape }

func (g *Game) setShape(s fov.Shape) {
	g.currentShape = s
	g.settings.SetShape(s)
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			g.move(0, -1, fov.North)
		case tcell.KeyDown:
			g.move(0, 1, fov.South)
		case tcell.KeyLeft:
			g.move(-1, 0, fov.West)
		case tcell.KeyRight:
			g.move(1, 0, fov.East)
		case tcell.KeyRune:
			return g.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		g.width, g.height = g.screen.Size()
		g.screen.Sync()
	}
	return true
}

func (g *Game) handleRune(r rune) bool {
	switch r {
	case 'h':
		g.move(-1, 0, fov.West)
	case 'j':
		g.move(0, 1, fov.South)
	case 'k':
		g.move(0, -1, fov.North)
	case 'l':
		g.move(1, 0, fov.East)
	case 'y':
		g.move(-1, -1, fov.Northwest)
	case 'u':
		g.move(1, -1, fov.Northeast)
	case 'n':
		g.move(-1, 1, fov.Southwest)
	case 'm':
		g.move(1, 1, fov.Southeast)
	case '=', '+':
		g.radius++
	case '-':
		if g.radius > 1 {
			g.radius--
		}
	case ']':
		g.angle = min(g.angle+5, 360)
	case '[':
		g.angle = max(g.angle-5, 0)
	case 's':
		g.setShape(fov.Square)
	case 'c':
		g.setShape(fov.Circle)
	case 'p':
		g.setShape(fov.CirclePrecalculate)
	case 'o':
		g.setShape(fov.Octagon)
	case 'a':
		if g.settings.OpaqueApply() == fov.Apply {
			g.settings.SetOpaqueApply(fov.NoApply)
		} else {
			g.settings.SetOpaqueApply(fov.Apply)
		}
	case 'b':
		g.beam = !g.beam
	case 'q':
		return false
	}
	return true
}

func (g *Game) run() {
	eventChan := make(chan tcell.Event, 16)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	g.draw()
	for ev := range eventChan {
		if !g.handleInput(ev) {
			return
		}
		g.draw()
	}
}

// opacity adapts grid.Map to the engine's opacity callback. Off-map
// reports opaque, so the scan cannot escape the raster.
func opacity(m any, x, y int) bool {
	return m.(*grid.Map).Opaque(x, y)
}

// applyLighting marks lit cells seen; the offset and source payload
// are unused here.
func applyLighting(m any, x, y, _, _ int, _ any) {
	m.(*grid.Map).SetSeen(x, y)
}

func main() {
	configPath := flag.String("config", "fovdemo.toml", "path to TOML config")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	g, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer g.screen.Fini()

	g.run()
}
