// Package host adapts Ebitengine to the editor's device-independent
// input, drawing and file-picking boundaries.
package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/example/gridsmith/internal/geom"
	"github.com/example/gridsmith/internal/input"
)

// Key repeat timing, in ticks.
const (
	repeatDelay    = 24
	repeatInterval = 3
)

var keyMap = map[input.Key][]ebiten.Key{
	input.KeyTab:       {ebiten.KeyTab},
	input.KeyEnter:     {ebiten.KeyEnter, ebiten.KeyNumpadEnter},
	input.KeyEscape:    {ebiten.KeyEscape},
	input.KeyBackspace: {ebiten.KeyBackspace},
	input.KeyDelete:    {ebiten.KeyDelete},
	input.KeyLeft:      {ebiten.KeyArrowLeft},
	input.KeyRight:     {ebiten.KeyArrowRight},
	input.KeyUp:        {ebiten.KeyArrowUp},
	input.KeyDown:      {ebiten.KeyArrowDown},
	input.KeyHome:      {ebiten.KeyHome},
	input.KeyEnd:       {ebiten.KeyEnd},
	input.KeyShift:     {ebiten.KeyShift},
	input.KeyControl:   {ebiten.KeyControl, ebiten.KeyMeta},
	input.KeyEqual:     {ebiten.KeyEqual, ebiten.KeyNumpadAdd},
	input.KeyMinus:     {ebiten.KeyMinus, ebiten.KeyNumpadSubtract},
	input.KeyS:         {ebiten.KeyS},
	input.KeyO:         {ebiten.KeyO},
	input.KeyN:         {ebiten.KeyN},
	input.KeyZero:      {ebiten.Key0, ebiten.KeyNumpad0},
}

// Keys that auto-repeat while held.
var repeatKeys = []input.Key{
	input.KeyBackspace, input.KeyDelete,
	input.KeyLeft, input.KeyRight, input.KeyUp, input.KeyDown,
}

// Input samples Ebitengine's devices once per tick and produces a Frame.
type Input struct {
	prev     input.Sample
	prevKeys input.KeySample
	elapsed  float64
}

func NewInput() *Input {
	return &Input{}
}

// Frame reads the current device state. Call it exactly once per Update.
func (in *Input) Frame(viewport geom.Rect) *input.Frame {
	x, y := ebiten.CursorPosition()
	cur := input.Sample{Pos: geom.V(float64(x), float64(y))}
	cur.Down[input.ButtonPrimary] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	cur.Down[input.ButtonSecondary] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	cur.Down[input.ButtonMiddle] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	var keys input.KeySample
	for k, eks := range keyMap {
		for _, ek := range eks {
			if ebiten.IsKeyPressed(ek) {
				keys.Set(k, true)
				break
			}
		}
	}

	// A repeat tick looks like a fresh press to the widgets.
	prevKeys := in.prevKeys
	for _, k := range repeatKeys {
		if repeating(k) {
			prevKeys.Set(k, false)
		}
	}

	wx, wy := ebiten.Wheel()
	chars := ebiten.AppendInputChars(nil)

	dt := 1 / float64(ebiten.TPS())
	in.elapsed += dt

	p := input.NewPointerFrame(cur, in.prev, geom.V(wx, wy))
	kf := input.NewKeyFrame(keys, prevKeys, chars)
	in.prev, in.prevKeys = cur, keys
	return input.NewFrame(p, kf, viewport, dt, in.elapsed)
}

func repeating(k input.Key) bool {
	for _, ek := range keyMap[k] {
		d := inpututil.KeyPressDuration(ek)
		if d > repeatDelay && (d-repeatDelay)%repeatInterval == 0 {
			return true
		}
	}
	return false
}
