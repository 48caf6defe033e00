package bramble

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png" // PNG textures
	"io/fs"
	"path"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Future is the result of an asynchronous load. It is resolved by
// Loader.Poll on the frame goroutine, so callbacks never race the scene.
type Future[T any] struct {
	done      bool
	value     T
	err       error
	callbacks []func(T, error)
}

// Then registers fn to run when the future resolves. If it already has, fn
// runs immediately.
func (f *Future[T]) Then(fn func(T, error)) {
	if f.done {
		fn(f.value, f.err)
		return
	}
	f.callbacks = append(f.callbacks, fn)
}

// Done reports whether the future has resolved.
func (f *Future[T]) Done() bool {
	return f.done
}

// Result returns the value and error. Both are zero until Done.
func (f *Future[T]) Result() (T, error) {
	return f.value, f.err
}

func (f *Future[T]) resolve(v T, err error) {
	f.value, f.err, f.done = v, err, true
	cbs := f.callbacks
	f.callbacks = nil
	for _, fn := range cbs {
		fn(v, err)
	}
}

// Loader reads assets from a file system on background goroutines and hands
// the results back through Poll.
type Loader struct {
	fsys fs.FS

	mu        sync.Mutex
	completed []func()

	wg      sync.WaitGroup
	pending int
}

// NewLoader creates a Loader reading from fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// FS returns the file system the loader reads from.
func (l *Loader) FS() fs.FS {
	return l.fsys
}

// LoadBytes reads path asynchronously.
func (l *Loader) LoadBytes(name string) *Future[[]byte] {
	f := &Future[[]byte]{}
	l.start(func() func() {
		data, err := fs.ReadFile(l.fsys, name)
		if err != nil {
			err = fmt.Errorf("bramble: load %q: %w", name, err)
		}
		return func() { f.resolve(data, err) }
	})
	return f
}

// LoadText reads path asynchronously as a string.
func (l *Loader) LoadText(name string) *Future[string] {
	f := &Future[string]{}
	l.start(func() func() {
		data, err := fs.ReadFile(l.fsys, name)
		if err != nil {
			err = fmt.Errorf("bramble: load %q: %w", name, err)
		}
		return func() { f.resolve(string(data), err) }
	})
	return f
}

// LoadTexture reads and decodes path asynchronously. Files ending in .tga
// use DecodeTGA; anything else goes through image.Decode.
func (l *Loader) LoadTexture(name string) *Future[*TextureData] {
	f := &Future[*TextureData]{}
	l.start(func() func() {
		td, err := l.readTexture(name)
		return func() { f.resolve(td, err) }
	})
	return f
}

func (l *Loader) readTexture(name string) (*TextureData, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("bramble: load %q: %w", name, err)
	}
	return DecodeTexture(name, data)
}

// DecodeTexture decodes data by the extension of name.
func DecodeTexture(name string, data []byte) (*TextureData, error) {
	if strings.EqualFold(path.Ext(name), ".tga") {
		td, err := DecodeTGA(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("bramble: decode %q: %w", name, err)
		}
		return td, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("bramble: decode %q: %w", name, err)
	}
	return NewTextureData(img), nil
}

// start runs work on its own goroutine. work returns the completion that
// Poll later executes.
func (l *Loader) start(work func() func()) {
	l.pending++
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		done := work()
		l.mu.Lock()
		l.completed = append(l.completed, done)
		l.mu.Unlock()
	}()
}

// Poll resolves every load that has finished since the last call and
// returns how many resolved. Call it once per frame from the frame goroutine.
func (l *Loader) Poll() int {
	l.mu.Lock()
	done := l.completed
	l.completed = nil
	l.mu.Unlock()

	for _, fn := range done {
		fn()
	}
	l.pending -= len(done)
	return len(done)
}

// Pending returns the number of loads that have not yet resolved.
func (l *Loader) Pending() int {
	return l.pending
}

// Flush blocks until every started load has finished, then polls.
func (l *Loader) Flush() int {
	l.wg.Wait()
	return l.Poll()
}

// Preload reads every path concurrently and returns their contents keyed by
// path. The first failure cancels the remaining reads and is returned.
func (l *Loader) Preload(ctx context.Context, paths ...string) (map[string][]byte, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([][]byte, len(paths))
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(l.fsys, p)
			if err != nil {
				return fmt.Errorf("bramble: preload %q: %w", p, err)
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string][]byte, len(paths))
	for i, p := range paths {
		out[p] = results[i]
	}
	Log().Debug("preloaded assets", zap.Int("count", len(paths)))
	return out, nil
}
