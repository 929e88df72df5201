package host

import (
	"errors"
	"fmt"

	native "github.com/sqweek/dialog"

	"github.com/example/gridsmith/internal/dialog"
)

// NativePicker opens the operating system's file dialogs.
type NativePicker struct{}

// Open asks for an existing file. A cancelled picker returns
// dialog.ErrCancelled.
func (NativePicker) Open(title, desc string, exts ...string) (string, error) {
	path, err := native.File().Filter(desc, exts...).Title(title).Load()
	return path, mapErr(err)
}

// Save asks for a destination file.
func (NativePicker) Save(title, desc string, exts ...string) (string, error) {
	path, err := native.File().Filter(desc, exts...).Title(title).Save()
	return path, mapErr(err)
}

// Alert shows a blocking error box.
func (NativePicker) Alert(title, msg string) {
	native.Message("%s", msg).Title(title).Error()
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, native.ErrCancelled):
		return dialog.ErrCancelled
	}
	return fmt.Errorf("file picker: %w", err)
}
