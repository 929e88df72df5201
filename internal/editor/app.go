// Package editor is the gridsmith application: it owns the workspace and
// runs the overlays, drag controller, modal and canvases in a fixed order
// every frame.
package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/gridsmith/internal/config"
	"github.com/example/gridsmith/internal/dialog"
	"github.com/example/gridsmith/internal/drag"
	"github.com/example/gridsmith/internal/focus"
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
	"github.com/example/gridsmith/internal/logging"
	"github.com/example/gridsmith/internal/overlay"
	"github.com/example/gridsmith/internal/render"
	"github.com/example/gridsmith/internal/widget"
)

var log = logging.For("editor")

// FilePicker chooses files for the File menu.
type FilePicker interface {
	// Open and Save return dialog.ErrCancelled when the user backs out.
	Open(title, desc string, exts ...string) (string, error)
	Save(title, desc string, exts ...string) (string, error)
	Alert(title, msg string)
}

// actions is what the canvases and panels ask of the application.
type actions interface {
	status(format string, args ...any)
	prompt(title, label, value string, validate func(string) string, apply func(string))
	confirm(title, msg, okLabel string, apply func())
}

// Tabs.
const (
	TabGraph = iota
	TabMap
)

// Menus and their rows.
const (
	menuFile = iota
	menuEdit
	menuView
	menuHelp
)

const (
	fileNew = iota
	fileOpen
	fileSave
	fileSaveAs
	fileExport
	_
	fileQuit
)

const (
	editRename = iota
	editDuplicate
	editDelete
	_
	editAddLayer
	editAddGroup
)

const (
	viewGraph = iota
	viewMap
	_
	viewZoomIn
	viewZoomOut
	viewReset
)

const (
	helpShortcuts = iota
	helpAbout
)

const (
	layersW  = 220
	tabsH    = 24
	logLines = 8
)

// Layout is the screen split computed every frame.
type Layout struct {
	MenuBar geom.Rect
	Tabs    geom.Rect
	Layers  geom.Rect
	Canvas  geom.Rect
	Status  geom.Rect
}

// ComputeLayout splits the viewport into the editor's regions.
func ComputeLayout(vp geom.Rect) Layout {
	menu := geom.R(vp.X, vp.Y, vp.W, render.MenuBarH)
	status := geom.R(vp.X, vp.Bottom()-render.StatusBarH, vp.W, render.StatusBarH)
	tabs := geom.R(vp.X+layersW, menu.Bottom(), vp.W-layersW, tabsH)
	return Layout{
		MenuBar: menu,
		Tabs:    tabs,
		Layers:  geom.R(vp.X, menu.Bottom(), layersW, status.Y-menu.Bottom()),
		Canvas:  geom.R(tabs.X, tabs.Bottom(), tabs.W, status.Y-tabs.Bottom()),
		Status:  status,
	}
}

var shortcutList = []dialog.Shortcut{
	{Keys: "Ctrl+N", Action: "New project"},
	{Keys: "Ctrl+O", Action: "Open workspace"},
	{Keys: "Ctrl+S", Action: "Save workspace"},
	{Keys: "Tab / Shift+Tab", Action: "Cycle text fields"},
	{Keys: "Esc", Action: "Leave field, close menu or dialog"},
	{Keys: "Left drag header", Action: "Move node"},
	{Keys: "Left drag port", Action: "Connect nodes"},
	{Keys: "Right drag", Action: "Pan"},
	{Keys: "Right click", Action: "Context menu"},
	{Keys: "Middle drag", Action: "Pan"},
	{Keys: "Wheel", Action: "Zoom about pointer"},
	{Keys: "+ / - / 0", Action: "Zoom in, out, reset"},
	{Keys: "Del", Action: "Delete selected node"},
}

// App is the editor.
type App struct {
	Settings  config.Settings
	Workspace *Workspace
	// Path is where Save writes.
	Path string

	Stack  *overlay.Stack
	Drag   *drag.Controller
	Chain  *focus.Chain
	Menus  *overlay.MenuBar
	Tabs   *widget.Tabs
	Graph  *GraphEditor
	Map    *MapEditor
	Layers *LayersPanel

	picker  FilePicker
	measure overlay.MeasureFunc
	ctx     *overlay.Group
	modal   dialog.Modal
	done    func()
	layout  Layout
	log     []string
	quit    bool
}

// New returns an editor for ws. measure sizes menu and tab text; nil uses
// fixed 7x13 cells. picker may be nil, which disables file dialogs.
func New(s config.Settings, ws *Workspace, path string, picker FilePicker, measure overlay.MeasureFunc) *App {
	a := &App{
		Settings: s,
		Path:     path,
		Stack:    overlay.NewStack(),
		Drag:     drag.NewController(s.Input.DragThreshold),
		Chain:    focus.NewChain(),
		Tabs:     widget.NewTabs("Graph", "Map"),
		picker:   picker,
		measure:  measure,
	}
	a.Stack.Measure = measure
	a.Chain.Blink = focus.NewBlink(s.Input.BlinkInterval)
	a.ctx = a.Stack.NewGroup("context")
	a.Menus = overlay.NewMenuBar(a.Stack)
	a.Menus.Add("File",
		overlay.Item{Label: "New Project...", Shortcut: "Ctrl+N"},
		overlay.Item{Label: "Open...", Shortcut: "Ctrl+O"},
		overlay.Item{Label: "Save", Shortcut: "Ctrl+S"},
		overlay.Item{Label: "Save As..."},
		overlay.Item{Label: "Export..."},
		overlay.Sep,
		overlay.Item{Label: "Quit"},
	)
	a.Menus.Add("Edit",
		overlay.Item{Label: "Rename Node..."},
		overlay.Item{Label: "Duplicate Node"},
		overlay.Item{Label: "Delete Node", Shortcut: "Del"},
		overlay.Sep,
		overlay.Item{Label: "Add Layer"},
		overlay.Item{Label: "Add Group"},
	)
	a.Menus.Add("View",
		overlay.Item{Label: "Graph"},
		overlay.Item{Label: "Map"},
		overlay.Sep,
		overlay.Item{Label: "Zoom In", Shortcut: "+"},
		overlay.Item{Label: "Zoom Out", Shortcut: "-"},
		overlay.Item{Label: "Reset View", Shortcut: "0"},
	)
	a.Menus.Add("Help", overlay.Items("Shortcuts", "About")...)
	a.SetWorkspace(ws)
	return a
}

// SetWorkspace replaces the open workspace and rebuilds the editors that
// point into it.
func (a *App) SetWorkspace(ws *Workspace) {
	ws.normalize()
	a.Drag.Cancel()
	a.Stack.CloseAll()
	a.Chain.Focus(nil)
	if a.Map != nil {
		a.Chain.Remove(a.Map.GoTo)
	}
	a.Workspace = ws
	a.Graph = newGraphEditor(&ws.Graph, a.Settings.Graph, a.ctx, a)
	a.Map = newMapEditor(&ws.Map, a.Settings.Map, a.Chain, a.ctx, a)
	a.Layers = newLayersPanel(&ws.Groups, a.ctx, a)
	a.Tabs.Active = geom.ClampInt(ws.ActiveTab, TabGraph, TabMap)
}

// Quit reports whether the user chose File > Quit.
func (a *App) Quit() bool {
	return a.quit
}

// Modal returns the open dialog, or nil.
func (a *App) Modal() dialog.Modal {
	return a.modal
}

// Log returns the recent status messages, oldest first.
func (a *App) Log() []string {
	return a.log
}

// Layout returns the regions from the last Update.
func (a *App) Layout() Layout {
	return a.layout
}

func (a *App) status(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Info(msg)
	a.log = append(a.log, msg)
	if len(a.log) > logLines {
		a.log = a.log[len(a.log)-logLines:]
	}
}

// openModal shows m. done runs once m completes, confirmed or not.
func (a *App) openModal(m dialog.Modal, done func()) {
	a.Stack.CloseAll()
	a.Drag.Cancel()
	a.Chain.Focus(nil)
	a.modal = m
	a.done = done
	log.Debug("modal open", "title", m.Title())
}

func (a *App) prompt(title, label, value string, validate func(string) string, apply func(string)) {
	p := dialog.NewTextPrompt(title, label, value)
	p.Validate = validate
	a.openModal(p, func() {
		if !p.Cancelled() {
			apply(p.Value())
		}
	})
}

func (a *App) confirm(title, msg, okLabel string, apply func()) {
	c := dialog.NewConfirm(title, msg, okLabel)
	a.openModal(c, func() {
		if !c.Cancelled() {
			apply()
		}
	})
}

// Update runs one frame. The order is fixed: overlays get first refusal
// of the pointer, then the drag controller, then the modal, and only then
// the widgets beneath, topmost first.
func (a *App) Update(f *input.Frame) {
	a.layout = ComputeLayout(f.Viewport)
	a.Stack.Update(f)
	a.Drag.Update(f.Pointer)

	keys := true
	if a.modal != nil {
		m := a.modal
		m.Update(&dialog.Env{Frame: f, Drag: a.Drag})
		f.Pointer.ForceClaim()
		keys = false
		if m.Complete() {
			done := a.done
			a.modal, a.done = nil, nil
			log.Debug("modal closed", "title", m.Title(), "cancelled", m.Cancelled())
			if done != nil {
				done()
			}
		}
	} else {
		a.Chain.Update(f)
		keys = a.Chain.Focused() == nil
	}
	if keys {
		a.shortcuts(f.Keys)
	}

	if menu, item, ok := a.Menus.Update(f, a.layout.MenuBar, a.measure); ok {
		a.menuAction(menu, item)
	}
	if a.Tabs.Update(f, a.layout.Tabs, a.measure) {
		a.Workspace.ActiveTab = a.Tabs.Active
	}
	a.Layers.Update(f, a.Drag, a.layout.Layers)
	switch a.Tabs.Active {
	case TabGraph:
		a.Graph.Update(f, a.Drag, a.layout.Canvas, keys)
	case TabMap:
		a.Map.Update(f, a.Drag, a.layout.Canvas, keys)
	}
	if a.modal == nil {
		a.Chain.EndFrame(f)
	}
	a.refreshMenus()
}

func (a *App) shortcuts(k *input.KeyFrame) {
	if !k.Ctrl() {
		return
	}
	switch {
	case k.Consume(input.KeyS):
		a.menuAction(menuFile, fileSave)
	case k.Consume(input.KeyO):
		a.menuAction(menuFile, fileOpen)
	case k.Consume(input.KeyN):
		a.menuAction(menuFile, fileNew)
	}
}

// refreshMenus greys out rows that have nothing to act on.
func (a *App) refreshMenus() {
	edit := a.Menus.Menus[menuEdit]
	node := a.Tabs.Active == TabGraph && a.Graph.Selected != 0
	edit.SetItemEnabled(editRename, node)
	edit.SetItemEnabled(editDuplicate, node)
	edit.SetItemEnabled(editDelete, node)
	view := a.Menus.Menus[menuView]
	view.SetItemEnabled(viewGraph, a.Tabs.Active != TabGraph)
	view.SetItemEnabled(viewMap, a.Tabs.Active != TabMap)
}

func (a *App) menuAction(menu, item int) {
	switch menu {
	case menuFile:
		a.fileAction(item)
	case menuEdit:
		switch item {
		case editRename:
			a.Graph.RenameNode(a.Graph.Selected)
		case editDuplicate:
			a.Graph.DuplicateNode(a.Graph.Selected)
		case editDelete:
			a.Graph.deleteNode(a.Graph.Selected)
		case editAddLayer:
			a.Layers.AddLayer(a.Layers.Selected.Group)
		case editAddGroup:
			a.Layers.AddGroup()
		}
	case menuView:
		a.viewAction(item)
	case menuHelp:
		switch item {
		case helpShortcuts:
			a.openModal(dialog.NewShortcuts(shortcutList), nil)
		case helpAbout:
			a.openModal(dialog.NewAbout(
				"gridsmith",
				"A node graph, map grid and layer editor.",
				"Settings: "+config.DefaultPath,
			), nil)
		}
	}
}

func (a *App) viewAction(item int) {
	switch item {
	case viewGraph, viewMap:
		a.Tabs.Active = item
		a.Workspace.ActiveTab = item
	case viewZoomIn, viewZoomOut:
		d := 1.0
		if item == viewZoomOut {
			d = -1
		}
		if a.Tabs.Active == TabGraph {
			a.Graph.View.AdjustZoom(d, a.layout.Canvas.Center())
		} else {
			a.Map.View.AdjustZoom(d, a.layout.Canvas.Center())
		}
	case viewReset:
		if a.Tabs.Active == TabGraph {
			a.Graph.ResetView(a.Settings.Map.GlideSeconds)
		} else {
			a.Map.ResetView()
		}
	}
}

func (a *App) fileAction(item int) {
	switch item {
	case fileNew:
		d := dialog.NewNewProject(a.Stack, a.Settings.Map.Columns, a.Settings.Map.Rows)
		a.openModal(d, func() {
			if d.Cancelled() {
				return
			}
			o := d.Options()
			a.SetWorkspace(NewWorkspace(o.Name, o.Columns, o.Rows, o.CellSize))
			a.status("new project %q (%dx%d)", o.Name, o.Columns, o.Rows)
		})
	case fileOpen:
		path, ok := a.pick(func(p FilePicker) (string, error) {
			return p.Open("Open Workspace", "Workspace", "yml", "yaml")
		})
		if !ok {
			return
		}
		ws, err := LoadWorkspace(path)
		if err != nil {
			a.fail("Open failed", err)
			return
		}
		a.SetWorkspace(ws)
		a.Path = path
		a.status("opened %s", path)
	case fileSave:
		a.SaveTo(a.Path)
	case fileSaveAs:
		path, ok := a.pick(func(p FilePicker) (string, error) {
			return p.Save("Save Workspace", "Workspace", "yml")
		})
		if ok && a.SaveTo(withExt(path, "yml")) {
			a.Path = withExt(path, "yml")
		}
	case fileExport:
		d := dialog.NewExport(a.Stack)
		a.openModal(d, func() {
			if !d.Cancelled() {
				a.export(d.Options())
			}
		})
	case fileQuit:
		a.confirm("Quit", "Quit gridsmith? Unsaved changes are lost.", "Quit", func() { a.quit = true })
	}
}

// pick runs a picker call. Cancelling is not an error.
func (a *App) pick(fn func(FilePicker) (string, error)) (string, bool) {
	if a.picker == nil {
		a.status("no file picker available")
		return "", false
	}
	path, err := fn(a.picker)
	switch {
	case errors.Is(err, dialog.ErrCancelled):
		return "", false
	case err != nil:
		a.fail("File dialog failed", err)
		return "", false
	}
	return path, true
}

func (a *App) fail(title string, err error) {
	log.Error(title, "err", err)
	a.status("%s: %v", strings.ToLower(title), err)
	if a.picker != nil {
		a.picker.Alert(title, err.Error())
	}
}

// SaveTo writes the workspace, cameras included.
func (a *App) SaveTo(path string) bool {
	a.Graph.sync()
	a.Map.sync()
	a.Workspace.ActiveTab = a.Tabs.Active
	if err := a.Workspace.Save(path); err != nil {
		a.fail("Save failed", fmt.Errorf("save %s: %w", path, err))
		return false
	}
	a.status("saved %s", path)
	return true
}

func (a *App) export(opts dialog.ExportOptions) {
	ext := ExportExt(opts.Format)
	path, ok := a.pick(func(p FilePicker) (string, error) {
		return p.Save("Export Workspace", opts.Format, ext)
	})
	if !ok {
		return
	}
	path = withExt(path, ext)
	a.Graph.sync()
	a.Map.sync()
	b, err := a.Workspace.Export(opts)
	if err == nil {
		err = os.WriteFile(path, b, 0o644)
	}
	if err != nil {
		a.fail("Export failed", fmt.Errorf("export %s: %w", path, err))
		return
	}
	a.status("exported %s", path)
}

func withExt(path, ext string) string {
	if filepath.Ext(path) == "" {
		return path + "." + ext
	}
	return path
}

// Draw renders the frame. Popups are drawn last so they cover the modal.
func (a *App) Draw(s render.Surface, viewport geom.Rect) {
	l := ComputeLayout(viewport)
	s.FillRect(viewport, render.ColorBackground)
	switch a.Tabs.Active {
	case TabGraph:
		a.Graph.Draw(s, a.Drag)
	case TabMap:
		a.Map.Draw(s, a.Drag)
	}
	a.Layers.Draw(s, a.Drag)
	s.FillRect(l.Tabs, render.ColorPanelHeader)
	a.Tabs.Draw(s)
	a.Menus.Draw(s, l.MenuBar)
	a.drawStatus(s, l.Status)
	if a.modal != nil {
		a.modal.Draw(s)
	}
	a.Stack.Draw(s, viewport)
}

func (a *App) drawStatus(s render.Surface, r geom.Rect) {
	s.FillRect(r, render.ColorStatusBg)
	if n := len(a.log); n > 0 {
		render.TextLeft(s, a.log[n-1], r, render.InnerPad, render.ColorTextDim)
	}
	info := a.Graph.info()
	if a.Tabs.Active == TabMap {
		info = a.Map.info()
	}
	w := s.Measure(info).X
	render.TextLeft(s, info, geom.R(r.Right()-w-2*render.InnerPad, r.Y, w+2*render.InnerPad, r.H), render.InnerPad, render.ColorText)
}
