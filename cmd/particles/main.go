// Package main provides a particle effect viewer for tuning the spark and
// crystal effects without running the full overlay.
//
// Usage:
//
//	go run cmd/particles/main.go [flags]
//
// Flags:
//
//	--intensity <f>   Burst size multiplier (default 1.0)
//	--frequency <f>   Bursts per second, as used by the overlay triggers
//	--verbose         Enable verbose logging (default off)
//
// Controls:
//
//	Mouse Click  - Fire a spark burst at the cursor
//	Mouse Drag   - Stream crystal motes along the pointer path
//	Space        - Toggle pause (粒子冻结在原地)
//	R            - Clear all active particles
//	Q/Escape     - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/colornames"

	"github.com/decker502/glowtrail/pkg/clock"
	"github.com/decker502/glowtrail/pkg/config"
	"github.com/decker502/glowtrail/pkg/particles"
	"github.com/decker502/glowtrail/pkg/systems"
)

const (
	screenWidth  = 1024
	screenHeight = 768
)

var (
	intensityFlag = flag.Float64("intensity", 1.0, "Burst size multiplier")
	frequencyFlag = flag.Float64("frequency", 15.0, "Bursts per second")
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

// ViewerGame implements ebiten.Game for the particle viewer
type ViewerGame struct {
	clk      *clock.PausableClock
	system   *particles.System
	renderer *systems.ParticleRenderSystem

	paused       bool
	dragging     bool
	prevX, prevY float64
}

// Update handles input and forwards spawn requests to the particle system
func (g *ViewerGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.clk.SetPaused(g.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.system.Reset()
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	if g.paused {
		return nil
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.system.SpawnBurst(x, y)
		g.dragging = true
		g.prevX, g.prevY = x, y
		return nil
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && g.dragging {
		dx, dy := x-g.prevX, y-g.prevY
		if math.Hypot(dx, dy) > 0.5 {
			g.system.SpawnCrystals(x, y, dx, dy, 1+rand.Intn(7))
			g.prevX, g.prevY = x, y
		}
	} else {
		g.dragging = false
	}
	return nil
}

// Draw renders the particles over a dark backdrop plus a small status line
func (g *ViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	g.renderer.Draw(screen, g.system)

	status := fmt.Sprintf(
		"Sparks: %d  Crystals: %d  Paused: %v\nClick: burst  Drag: crystals  Space: pause  R: clear  Q: quit",
		g.system.SparkCount(), g.system.CrystalCount(), g.paused)
	ebitenutil.DebugPrintAt(screen, status, 8, 8)
}

// Layout returns the fixed logical resolution
func (g *ViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	clk := clock.New()
	system := particles.NewSystem(clk)

	cfg := config.Default()
	cfg.ExplosionIntensity = *intensityFlag
	cfg.ExplosionFrequency = *frequencyFlag
	store := config.NewStore(cfg)
	store.Watch(system)

	if err := system.Start(); err != nil {
		log.Fatalf("particle viewer: %v", err)
	}
	defer system.Close()

	game := &ViewerGame{
		clk:      clk,
		system:   system,
		renderer: systems.NewParticleRenderSystem(),
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("GlowTrail Particle Viewer")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("particle viewer: %v", err)
	}
}
