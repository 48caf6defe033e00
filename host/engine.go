package host

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/bramble"
	"github.com/phanxgames/bramble/ecs"
	"go.uber.org/zap"
)

// ErrUnknownState is returned by LoadState for an id with no registered
// factory.
var ErrUnknownState = errors.New("host: unknown state")

// StateFactory builds a fresh state. It runs on every LoadState so a state
// loaded twice starts clean.
type StateFactory func(e *Engine) (*ecs.State, error)

// Option configures an Engine.
type Option func(*Engine)

// WithFS reads assets from fsys instead of the config's asset root.
func WithFS(fsys fs.FS) Option {
	return func(e *Engine) { e.fsys = fsys }
}

// WithInput replaces the ebiten input device. A *bramble.VirtualInput also
// becomes the target of any input script.
func WithInput(in bramble.InputDevice) Option {
	return func(e *Engine) {
		e.input = in
		if v, ok := in.(*bramble.VirtualInput); ok {
			e.virtual = v
		}
	}
}

// WithScript plays r against a virtual input device, one step per Update.
func WithScript(r *bramble.TestRunner) Option {
	return func(e *Engine) { e.script = r }
}

// WithLogger installs l as the engine logger instead of building one from
// the config.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithoutQuitKey stops Escape from shutting the engine down.
func WithoutQuitKey() Option {
	return func(e *Engine) { e.quitOnEscape = false }
}

// Engine is the host boundary: it owns the shared resources, drives the
// current state one frame at a time and swaps states by id.
type Engine struct {
	cfg    bramble.Config
	fsys   fs.FS
	logger *zap.Logger

	loader  *bramble.Loader
	atlas   *bramble.Atlas
	font    *bramble.BitmapFont
	batch   *bramble.Batch
	input   bramble.InputDevice
	virtual *bramble.VirtualInput
	script  *bramble.TestRunner

	// Decoded page images waiting for the first Draw; ebiten images can
	// only be created once the game loop runs.
	pages map[int]*bramble.TextureData

	factories map[string]StateFactory
	state     *ecs.State
	next      string

	width, height int
	onResize      map[int]func(w, h int)
	resizeID      int

	initialized  bool
	running      bool
	quitOnEscape bool

	stats bramble.FrameStats
}

// New creates an engine for cfg. Call Init before the first frame.
func New(cfg bramble.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:          cfg,
		pages:        map[int]*bramble.TextureData{},
		factories:    map[string]StateFactory{},
		width:        cfg.Window.Width,
		height:       cfg.Window.Height,
		quitOnEscape: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init installs the logger, loads the atlas, its pages and the UI font, and
// sets up input. It is a no-op once it has succeeded.
func (e *Engine) Init() error {
	if e.initialized {
		return nil
	}
	if e.logger == nil {
		l, err := bramble.NewLogger(e.cfg.Log)
		if err != nil {
			return fmt.Errorf("host: init: %w", err)
		}
		e.logger = l
	}
	bramble.SetLogger(e.logger)

	if e.fsys == nil {
		e.fsys = os.DirFS(e.cfg.Assets.Root)
	}
	e.loader = bramble.NewLoader(e.fsys)

	if err := e.loadAssets(); err != nil {
		return err
	}
	e.batch = bramble.NewBatch(e.atlas, e.cfg.Tiles.Capacity)

	if e.script != nil && e.virtual == nil {
		e.virtual = bramble.NewVirtualInput()
		e.input = e.virtual
	}
	if e.input == nil {
		e.input = bramble.NewEbitenInput()
	}

	e.initialized = true
	e.running = true
	e.logger.Info("engine initialized",
		zap.Int("width", e.width),
		zap.Int("height", e.height),
		zap.Int("regions", e.atlas.Len()),
		zap.Int("pages", len(e.pages)),
	)
	return nil
}

// loadAssets reads the atlas and font descriptions together, then decodes
// every page image on the loader.
func (e *Engine) loadAssets() error {
	a := e.cfg.Assets
	var paths []string
	if a.Atlas != "" {
		paths = append(paths, a.Atlas)
	}
	if a.Font != "" {
		paths = append(paths, a.Font)
	}
	data, err := e.loader.Preload(context.Background(), paths...)
	if err != nil {
		return fmt.Errorf("host: init: %w", err)
	}

	e.atlas = bramble.NewAtlas()
	if a.Atlas != "" {
		if err := e.atlas.LoadJSON(data[a.Atlas], 0); err != nil {
			return fmt.Errorf("host: init: atlas %q: %w", a.Atlas, err)
		}
	}
	fontPage := len(a.Pages)
	if a.Font != "" {
		f, err := bramble.LoadBitmapFont(data[a.Font], e.atlas, uint16(fontPage))
		if err != nil {
			return fmt.Errorf("host: init: font %q: %w", a.Font, err)
		}
		e.font = f
	}

	pagePaths := a.Pages
	if a.FontPage != "" {
		pagePaths = append(pagePaths[:len(pagePaths):len(pagePaths)], a.FontPage)
	}
	var loadErr error
	for i, p := range pagePaths {
		e.loader.LoadTexture(p).Then(func(td *bramble.TextureData, err error) {
			if err != nil {
				loadErr = errors.Join(loadErr, err)
				return
			}
			e.pages[i] = td
		})
	}
	e.loader.Flush()
	if loadErr != nil {
		return fmt.Errorf("host: init: %w", loadErr)
	}
	return nil
}

// RegisterState binds id to f, replacing any earlier factory.
func (e *Engine) RegisterState(id string, f StateFactory) {
	e.factories[id] = f
}

// LoadState builds the state registered under id and makes it current. The
// previous state exits only once the new one has been built, so a failing
// factory leaves the current state running.
func (e *Engine) LoadState(id string) error {
	f, ok := e.factories[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, id)
	}
	next, err := f(e)
	if err != nil {
		return fmt.Errorf("host: create state %q: %w", id, err)
	}
	if next == nil {
		return fmt.Errorf("host: create state %q: factory returned nil", id)
	}

	prev := e.state
	if prev != nil {
		prev.Exit()
	}
	e.state = next
	next.Enter()

	fields := []zap.Field{zap.String("state", id)}
	if prev != nil {
		fields = append(fields, zap.String("previous", prev.ID()))
	}
	bramble.Log().Info("state loaded", fields...)
	return nil
}

// QueueState loads id at the start of the next Update. Use it from inside a
// frame, such as a button callback, where LoadState would tear down the state
// that is running.
func (e *Engine) QueueState(id string) {
	e.next = id
}

// Update runs one logical tick. A queued state loads, finished asset loads
// resolve, the input script queues its next events, input is sampled and
// finally the current state updates.
func (e *Engine) Update(dt float64) {
	if !e.running {
		return
	}
	start := time.Now()

	if id := e.next; id != "" {
		e.next = ""
		if err := e.LoadState(id); err != nil {
			bramble.Log().Error("queued state load failed", zap.String("state", id), zap.Error(err))
		}
	}
	e.loader.Poll()
	if e.script != nil && e.virtual != nil {
		e.script.Step(e.virtual)
	}
	e.input.Refresh()
	if e.state != nil {
		e.state.Update(dt)
	}
	e.stats.Update = time.Since(start)

	if e.quitOnEscape && e.input.KeyPressed(bramble.KeyEscape) {
		e.Shutdown()
	}
}

// Render runs the current state's render systems and then ends the input
// frame.
func (e *Engine) Render(dt float64) {
	if !e.running {
		return
	}
	start := time.Now()
	if e.state != nil {
		e.state.Render(dt)
	}
	e.input.PostUpdate()
	e.stats.Render = time.Since(start)

	if e.cfg.Debug {
		e.stats.Tiles = e.batch.Len()
		e.stats.DrawCalls = e.batch.DrawCalls()
		e.stats.Batches = e.batch.Batches()
		e.stats.Log(bramble.Log())
	}
}

// Draw swaps the tile batch onto screen.
func (e *Engine) Draw(screen *ebiten.Image) {
	start := time.Now()
	e.uploadPages()
	e.batch.Draw(screen)
	e.stats.Draw = time.Since(start)
}

func (e *Engine) uploadPages() {
	for i, td := range e.pages {
		e.batch.RegisterPage(i, ebiten.NewImageFromImage(td.Image()))
		delete(e.pages, i)
	}
}

// Shutdown exits the current state and stops the engine. Further Update and
// Render calls do nothing.
func (e *Engine) Shutdown() {
	if !e.running {
		return
	}
	e.running = false
	if e.state != nil {
		e.state.Exit()
		e.state = nil
	}
	bramble.Log().Info("engine shutdown")
	_ = bramble.Log().Sync()
}

// IsRunning reports whether the engine has been initialized and not shut
// down.
func (e *Engine) IsRunning() bool { return e.running }

// WindowSize returns the current logical window size.
func (e *Engine) WindowSize() (width, height int) { return e.width, e.height }

// OnResize registers fn to run whenever the window size changes. The
// returned func unregisters it.
func (e *Engine) OnResize(fn func(w, h int)) (stop func()) {
	if e.onResize == nil {
		e.onResize = map[int]func(w, h int){}
	}
	e.resizeID++
	id := e.resizeID
	e.onResize[id] = fn
	return func() { delete(e.onResize, id) }
}

// Resize records a new window size and notifies resize listeners.
func (e *Engine) Resize(w, h int) {
	if w == e.width && h == e.height {
		return
	}
	e.width, e.height = w, h
	for _, fn := range e.onResize {
		fn(w, h)
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() bramble.Config { return e.cfg }

// Batch returns the shared tile batch.
func (e *Engine) Batch() *bramble.Batch { return e.batch }

// Atlas returns the loaded atlas.
func (e *Engine) Atlas() *bramble.Atlas { return e.atlas }

// Font returns the UI font, or nil when none is configured.
func (e *Engine) Font() *bramble.BitmapFont { return e.font }

// Input returns the input device.
func (e *Engine) Input() bramble.InputDevice { return e.input }

// Loader returns the asset loader.
func (e *Engine) Loader() *bramble.Loader { return e.loader }

// State returns the current state, or nil.
func (e *Engine) State() *ecs.State { return e.state }

// Stats returns the timings of the most recent frame.
func (e *Engine) Stats() bramble.FrameStats { return e.stats }
