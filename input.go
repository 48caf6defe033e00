package bramble

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is a per-frame snapshot of the mouse and keyboard. Press and release
// sets cover exactly one frame; PostUpdate clears them once every consumer
// has read them.
type Input interface {
	CursorPosition() (x, y float64)
	MouseDown(b MouseButton) bool
	MousePressed(b MouseButton) bool
	MouseReleased(b MouseButton) bool
	KeyDown(k Key) bool
	KeyPressed(k Key) bool
	KeyReleased(k Key) bool
	AppendPressedKeys(keys []Key) []Key
	AppendReleasedKeys(keys []Key) []Key
	Modifiers() KeyModifiers
	PostUpdate()
}

// InputDevice is an Input that samples new state at the start of a frame.
type InputDevice interface {
	Input
	Refresh()
}

// inputState holds the sets shared by EbitenInput and VirtualInput.
type inputState struct {
	x, y float64

	down     [mouseButtonCount]bool
	pressed  [mouseButtonCount]bool
	released [mouseButtonCount]bool

	keysDown     map[Key]bool
	keysPressed  []Key
	keysReleased []Key

	mods KeyModifiers
}

func (s *inputState) CursorPosition() (x, y float64) { return s.x, s.y }

func (s *inputState) MouseDown(b MouseButton) bool {
	return b < mouseButtonCount && s.down[b]
}

func (s *inputState) MousePressed(b MouseButton) bool {
	return b < mouseButtonCount && s.pressed[b]
}

func (s *inputState) MouseReleased(b MouseButton) bool {
	return b < mouseButtonCount && s.released[b]
}

func (s *inputState) KeyDown(k Key) bool { return s.keysDown[k] }

func (s *inputState) KeyPressed(k Key) bool { return slices.Contains(s.keysPressed, k) }

func (s *inputState) KeyReleased(k Key) bool { return slices.Contains(s.keysReleased, k) }

func (s *inputState) AppendPressedKeys(keys []Key) []Key {
	return append(keys, s.keysPressed...)
}

func (s *inputState) AppendReleasedKeys(keys []Key) []Key {
	return append(keys, s.keysReleased...)
}

func (s *inputState) Modifiers() KeyModifiers { return s.mods }

// PostUpdate clears the per-frame press and release sets.
func (s *inputState) PostUpdate() {
	s.pressed = [mouseButtonCount]bool{}
	s.released = [mouseButtonCount]bool{}
	s.keysPressed = s.keysPressed[:0]
	s.keysReleased = s.keysReleased[:0]
}

func (s *inputState) pressMouse(b MouseButton) {
	if b >= mouseButtonCount || s.down[b] {
		return
	}
	s.down[b] = true
	s.pressed[b] = true
}

func (s *inputState) releaseMouse(b MouseButton) {
	if b >= mouseButtonCount || !s.down[b] {
		return
	}
	s.down[b] = false
	s.released[b] = true
}

func (s *inputState) pressKey(k Key) {
	if s.keysDown == nil {
		s.keysDown = make(map[Key]bool)
	}
	if s.keysDown[k] {
		return
	}
	s.keysDown[k] = true
	s.keysPressed = append(s.keysPressed, k)
}

func (s *inputState) releaseKey(k Key) {
	if !s.keysDown[k] {
		return
	}
	delete(s.keysDown, k)
	s.keysReleased = append(s.keysReleased, k)
}

// EbitenInput reads the mouse and keyboard through ebiten and inpututil.
type EbitenInput struct {
	inputState
	keyBuf []ebiten.Key
}

var _ InputDevice = (*EbitenInput)(nil)

// NewEbitenInput creates an ebiten-backed input device.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{inputState: inputState{keysDown: make(map[Key]bool)}}
}

// Refresh samples ebiten once. Call it at the start of every tick.
func (in *EbitenInput) Refresh() {
	mx, my := ebiten.CursorPosition()
	in.x, in.y = float64(mx), float64(my)

	for b := MouseButton(0); b < mouseButtonCount; b++ {
		eb := ebitenButton(b)
		in.down[b] = ebiten.IsMouseButtonPressed(eb)
		in.pressed[b] = inpututil.IsMouseButtonJustPressed(eb)
		in.released[b] = inpututil.IsMouseButtonJustReleased(eb)
	}

	clear(in.keysDown)
	in.keyBuf = inpututil.AppendPressedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		in.keysDown[Key(k)] = true
	}
	in.keysPressed = in.keysPressed[:0]
	in.keyBuf = inpututil.AppendJustPressedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		in.keysPressed = append(in.keysPressed, Key(k))
	}
	in.keysReleased = in.keysReleased[:0]
	in.keyBuf = inpututil.AppendJustReleasedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		in.keysReleased = append(in.keysReleased, Key(k))
	}

	in.mods = readModifiers()
}

func ebitenButton(b MouseButton) ebiten.MouseButton {
	switch b {
	case MouseButtonRight:
		return ebiten.MouseButtonRight
	case MouseButtonMiddle:
		return ebiten.MouseButtonMiddle
	default:
		return ebiten.MouseButtonLeft
	}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}
