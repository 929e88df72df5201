package dialog

import (
	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/overlay"
	"github.com/example/gridsmith/internal/render"
	"github.com/example/gridsmith/internal/widget"
)

// ExportFormats are the encodings the workspace can be exported as.
var ExportFormats = []string{"YAML", "TOML"}

// ExportOptions is what the Export dialog collects.
type ExportOptions struct {
	Format        string
	IncludeCamera bool
	OnlyVisible   bool
}

// Export collects options for writing the workspace to another file.
type Export struct {
	base
	Format        *widget.Dropdown
	IncludeCamera *widget.Checkbox
	OnlyVisible   *widget.Checkbox

	labels labels
}

// NewExport returns the Export dialog. Its dropdown opens on stack.
func NewExport(stack *overlay.Stack) *Export {
	d := &Export{
		base:          newBase("Export Workspace", geom.V(380, 200), "Export", "Cancel"),
		IncludeCamera: &widget.Checkbox{Label: "Include camera", Checked: true},
		OnlyVisible:   &widget.Checkbox{Label: "Visible layers only"},
	}
	d.Format = widget.NewDropdown(groups(stack, d.title), ExportFormats...)
	return d
}

// Options returns the chosen options.
func (d *Export) Options() ExportOptions {
	return ExportOptions{
		Format:        d.Format.Value(),
		IncludeCamera: d.IncludeCamera.Checked,
		OnlyVisible:   d.OnlyVisible.Checked,
	}
}

func (d *Export) Update(env *Env) {
	f := env.Frame
	rs := newRows(d.begin(env))
	d.labels.reset()
	lr, fr := rs.field()
	d.labels.add("Format", lr)
	d.Format.Update(f, fr)
	d.IncludeCamera.Update(f, rs.next())
	d.OnlyVisible.Update(f, rs.next())
	d.end(env, d.Format.Value() != "", false)
	if d.complete {
		d.Format.Close()
	}
}

func (d *Export) Draw(s render.Surface) {
	d.drawFrame(s)
	d.labels.draw(s)
	d.Format.Draw(s)
	d.IncludeCamera.Draw(s)
	d.OnlyVisible.Draw(s)
	d.drawButtons(s)
}
