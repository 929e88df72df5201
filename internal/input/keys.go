package input

// Key identifies a keyboard key the editor reacts to. The host maps its
// device keys onto this set.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyTab
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyShift
	KeyControl
	KeyEqual
	KeyMinus
	KeyS
	KeyO
	KeyN
	KeyZero
	keyCount
)

// KeyCount is the number of keys a KeySample tracks.
const KeyCount = int(keyCount)

// KeySample is one raw keyboard reading.
type KeySample [keyCount]bool

// Set marks k down in the sample.
func (s *KeySample) Set(k Key, down bool) {
	if k < keyCount {
		s[k] = down
	}
}

// KeyFrame is one frame's keyboard state plus the characters typed during
// the frame.
type KeyFrame struct {
	Chars []rune

	down     KeySample
	prevDown KeySample
}

// NewKeyFrame builds a key frame from the current and previous samples.
func NewKeyFrame(cur, prev KeySample, chars []rune) *KeyFrame {
	return &KeyFrame{Chars: chars, down: cur, prevDown: prev}
}

// Down reports whether k is held.
func (k *KeyFrame) Down(key Key) bool {
	return key < keyCount && k.down[key]
}

// Pressed reports whether k went down this frame.
func (k *KeyFrame) Pressed(key Key) bool {
	return key < keyCount && k.down[key] && !k.prevDown[key]
}

// Consume reports whether k was pressed this frame and clears the edge so
// no later reader sees it.
func (k *KeyFrame) Consume(key Key) bool {
	if !k.Pressed(key) {
		return false
	}
	k.prevDown[key] = true
	return true
}

// Ctrl reports whether a control key is held.
func (k *KeyFrame) Ctrl() bool {
	return k.Down(KeyControl)
}
