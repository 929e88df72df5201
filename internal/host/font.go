package host

import (
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/example/gridsmith/internal/logging"
)

var log = logging.For("host")

// LoadFace loads the TrueType font at path. When the file is missing or
// broken it falls back to the bundled Go Regular, and then to the 7x13
// bitmap face.
func LoadFace(path string, size float64) font.Face {
	if size <= 0 {
		size = 14
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			face, err := newFace(b, size)
			if err == nil {
				return face
			}
			log.Warn("could not load font; using Go Regular", "path", path, "err", err)
		} else {
			log.Warn("could not read font file; using Go Regular", "err", err)
		}
	}
	face, err := newFace(goregular.TTF, size)
	if err != nil {
		log.Error("could not create fallback face; using basic font", "err", err)
		return basicfont.Face7x13
	}
	return face
}

func newFace(ttf []byte, size float64) (font.Face, error) {
	tt, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(tt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}
