package dialog

import (
	"strconv"
	"strings"

	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/overlay"
	"github.com/example/gridsmith/internal/render"
	"github.com/example/gridsmith/internal/widget"
)

// CellSizes are the map cell sizes a new project can use.
var CellSizes = []string{"8", "16", "32"}

// ProjectOptions is what the New Project dialog collects.
type ProjectOptions struct {
	Name     string
	Columns  int
	Rows     int
	CellSize float64
}

// NewProject collects the settings for an empty workspace.
type NewProject struct {
	base
	Name     *widget.TextField
	Columns  *widget.NumberField
	Rows     *widget.NumberField
	CellSize *widget.Dropdown

	labels labels
}

// NewNewProject returns the New Project dialog with the given defaults.
func NewNewProject(stack *overlay.Stack, cols, rows int) *NewProject {
	d := &NewProject{base: newBase("New Project", geom.V(400, 240), "Create", "Cancel")}
	d.Name = widget.NewTextField(d.chain)
	d.Name.Placeholder = "untitled"
	d.Name.MaxLen = 48
	d.Columns = widget.NewNumberField(d.chain, float64(cols), 1, 256)
	d.Columns.Integer = true
	d.Rows = widget.NewNumberField(d.chain, float64(rows), 1, 256)
	d.Rows.Integer = true
	d.CellSize = widget.NewDropdown(groups(stack, d.title), CellSizes...)
	d.CellSize.Selected = 1
	d.Name.Focus()
	return d
}

// Options returns the chosen settings. A blank name becomes "untitled".
func (d *NewProject) Options() ProjectOptions {
	name := strings.TrimSpace(d.Name.Text)
	if name == "" {
		name = d.Name.Placeholder
	}
	size, err := strconv.ParseFloat(d.CellSize.Value(), 64)
	if err != nil {
		size = 16
	}
	return ProjectOptions{Name: name, Columns: d.Columns.Int(), Rows: d.Rows.Int(), CellSize: size}
}

func (d *NewProject) Update(env *Env) {
	f := env.Frame
	rs := newRows(d.begin(env))
	d.labels.reset()

	lr, fr := rs.field()
	d.labels.add("Name", lr)
	_, submit := d.Name.Update(f, fr)
	lr, fr = rs.field()
	d.labels.add("Columns", lr)
	d.Columns.Update(f, fr)
	lr, fr = rs.field()
	d.labels.add("Rows", lr)
	d.Rows.Update(f, fr)
	lr, fr = rs.field()
	d.labels.add("Cell size", lr)
	d.CellSize.Update(f, fr)

	d.end(env, true, submit)
	if d.complete {
		d.CellSize.Close()
	}
}

func (d *NewProject) Draw(s render.Surface) {
	d.drawFrame(s)
	d.labels.draw(s)
	d.Name.Draw(s)
	d.Columns.Draw(s)
	d.Rows.Draw(s)
	d.CellSize.Draw(s)
	d.drawButtons(s)
}
