package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/example/gridsmith/internal/config"
	"github.com/example/gridsmith/internal/editor"
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/host"
	"github.com/example/gridsmith/internal/logging"
	"github.com/example/gridsmith/internal/render"
)

var log = logging.For("main")

type Game struct {
	app    *editor.App
	input  *host.Input
	screen *host.Screen
	w, h   int
}

func NewGame(s config.Settings, ws *editor.Workspace, path string) *Game {
	screen := host.NewScreen(host.LoadFace(s.FontPath, s.FontSize))
	return &Game{
		app:    editor.New(s, ws, path, host.NativePicker{}, screen.Measure),
		input:  host.NewInput(),
		screen: screen,
		w:      s.Window.Width,
		h:      s.Window.Height,
	}
}

func (g *Game) viewport() geom.Rect {
	return geom.R(0, 0, float64(g.w), float64(g.h))
}

func (g *Game) Update() error {
	g.app.Update(g.input.Frame(g.viewport()))
	if g.app.Quit() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.ColorBackground)
	g.screen.Begin(screen)
	g.app.Draw(g.screen, g.viewport())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// The logical screen tracks the window so resizing never letterboxes.
	g.w, g.h = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func loadWorkspace(path string) *editor.Workspace {
	ws, err := editor.LoadWorkspace(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Info("no workspace yet; starting from the sample", "path", path)
		return editor.SampleWorkspace()
	case err != nil:
		log.Warn("could not load workspace; starting from the sample", "err", err)
		return editor.SampleWorkspace()
	}
	return ws
}

func main() {
	cfgPath := flag.String("config", config.DefaultPath, "settings file")
	wsPath := flag.String("workspace", "", "workspace file (default from settings)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	s, err := config.Load(*cfgPath)
	if err != nil {
		log.Warn("using default settings", "err", err)
	}
	logging.SetVerbose(*verbose || s.Log.Verbose)
	if *wsPath == "" {
		*wsPath = s.Workspace
	}

	ebiten.SetWindowSize(s.Window.Width, s.Window.Height)
	ebiten.SetWindowTitle(s.Window.Title)
	ebiten.SetWindowResizable(true)
	g := NewGame(s, loadWorkspace(*wsPath), *wsPath)
	if err := ebiten.RunGame(g); err != nil {
		log.Error("run", "err", err)
		os.Exit(1)
	}
}
