package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/meghashyamc/bounce2d/config"
	"github.com/meghashyamc/bounce2d/logger"
	"github.com/meghashyamc/bounce2d/sim"
)

// Game adapts a sim.World to ebiten's Update/Draw loop.
type Game struct {
	cfg       *config.Config
	world     *sim.World
	input     sim.InputSource
	renderErr error
	logger    logger.Logger
}

func NewGame(cfg *config.Config) (*Game, error) {
	log := logger.New(cfg.GetLogLevel())

	seed := cfg.GetSeed()
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	world, err := sim.NewWorld(cfg.WorldSettings(), sim.NewRand(seed), log)
	if err != nil {
		log.Error("failed to create world", "err", err)
		return nil, err
	}

	g := &Game{
		cfg:    cfg,
		world:  world,
		input:  NewKeyboardInput(&ebitenKeys{}),
		logger: log,
	}

	g.logger.Info("game initialized", "seed", seed, "bodies", cfg.GetBodyCount())
	return g, nil
}

func (g *Game) Run() error {
	g.logger.Info("starting game")
	g.setupWindow()

	// Running the game calls Update() on every displayed frame
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("game loop stopped: %w", err)
	}
	g.logger.Info("game stopped", "ticks", g.world.Tick())
	return nil
}

func (g *Game) setupWindow() {
	ebiten.SetWindowSize(g.cfg.GetWindowWidth(), g.cfg.GetWindowHeight())
	ebiten.SetWindowTitle(g.cfg.GetWindowTitle())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetVsyncEnabled(true)
	// One simulation step per presented frame
	ebiten.SetTPS(ebiten.SyncWithFPS)
}

func (g *Game) Update() error {
	if g.renderErr != nil {
		return g.renderErr
	}

	if !g.world.Step(g.input.Poll()) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.renderErr != nil {
		return
	}
	if err := g.world.Render(&screenRenderer{screen: screen}); err != nil {
		g.logger.Error("failed to render frame", "tick", g.world.Tick(), "err", err)
		g.renderErr = err
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	bounds := g.world.Bounds()
	return int(bounds.Width), int(bounds.Height)
}
