package bramble

// syntheticEvent is a single queued input change. Each one is applied by
// VirtualInput.Refresh on its own frame.
type syntheticEvent struct {
	x, y    float64
	button  MouseButton
	key     Key
	isKey   bool
	pressed bool
	hover   bool // cursor move only; buttons keep their state
}

// VirtualInput is an Input driven by code instead of hardware. Use it for
// tests, scripted demos and replays. Direct calls (Move, PressMouse, ...)
// take effect immediately; Inject* calls queue events consumed one per
// Refresh.
type VirtualInput struct {
	inputState
	queue []syntheticEvent
}

var _ InputDevice = (*VirtualInput)(nil)

// NewVirtualInput creates an idle virtual input device.
func NewVirtualInput() *VirtualInput {
	return &VirtualInput{inputState: inputState{keysDown: make(map[Key]bool)}}
}

// Move sets the cursor position.
func (v *VirtualInput) Move(x, y float64) {
	v.x, v.y = x, y
}

// PressMouse holds b down, marking it pressed for this frame.
func (v *VirtualInput) PressMouse(b MouseButton) { v.pressMouse(b) }

// ReleaseMouse lets go of b, marking it released for this frame.
func (v *VirtualInput) ReleaseMouse(b MouseButton) { v.releaseMouse(b) }

// PressKey holds k down, marking it pressed for this frame.
func (v *VirtualInput) PressKey(k Key) { v.pressKey(k) }

// ReleaseKey lets go of k, marking it released for this frame.
func (v *VirtualInput) ReleaseKey(k Key) { v.releaseKey(k) }

// SetModifiers sets the reported modifier keys.
func (v *VirtualInput) SetModifiers(m KeyModifiers) { v.mods = m }

// InjectPress queues a left press at (x, y).
func (v *VirtualInput) InjectPress(x, y float64) {
	v.queue = append(v.queue, syntheticEvent{x: x, y: y, pressed: true, button: MouseButtonLeft})
}

// InjectMove queues a move to (x, y) with the left button held.
func (v *VirtualInput) InjectMove(x, y float64) {
	v.InjectPress(x, y)
}

// InjectHover queues a cursor move to (x, y) that leaves the buttons alone.
func (v *VirtualInput) InjectHover(x, y float64) {
	v.queue = append(v.queue, syntheticEvent{x: x, y: y, hover: true})
}

// InjectRelease queues a left release at (x, y).
func (v *VirtualInput) InjectRelease(x, y float64) {
	v.queue = append(v.queue, syntheticEvent{x: x, y: y, button: MouseButtonLeft})
}

// InjectClick queues a press followed by a release at the same position.
// Consumes two frames.
func (v *VirtualInput) InjectClick(x, y float64) {
	v.InjectPress(x, y)
	v.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (v *VirtualInput) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	v.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		v.InjectMove(x, y)
	}
	v.InjectRelease(toX, toY)
}

// InjectKey queues a key press followed by its release. Consumes two frames.
func (v *VirtualInput) InjectKey(k Key) {
	v.queue = append(v.queue,
		syntheticEvent{key: k, isKey: true, pressed: true},
		syntheticEvent{key: k, isKey: true},
	)
}

// Pending returns the number of queued events.
func (v *VirtualInput) Pending() int {
	return len(v.queue)
}

// Refresh applies the next queued event, if any.
func (v *VirtualInput) Refresh() {
	if len(v.queue) == 0 {
		return
	}
	evt := v.queue[0]
	copy(v.queue, v.queue[1:])
	v.queue = v.queue[:len(v.queue)-1]

	if evt.isKey {
		if evt.pressed {
			v.pressKey(evt.key)
		} else {
			v.releaseKey(evt.key)
		}
		return
	}
	v.x, v.y = evt.x, evt.y
	if evt.hover {
		return
	}
	if evt.pressed {
		v.pressMouse(evt.button)
	} else {
		v.releaseMouse(evt.button)
	}
}
