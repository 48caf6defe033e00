package ecs

import (
	"testing"

	"github.com/phanxgames/bramble"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// tracker records every lifecycle call into a shared log.
type tracker struct {
	BaseComponent
	name string
	key  ComponentKey
	log  *[]string

	inits, removed, cleaned int
	onUpdate                func()
}

func newTracker(name string, log *[]string) *tracker {
	return &tracker{name: name, key: KeyOf(name), log: log}
}

func (p *tracker) Key() ComponentKey { return p.key }
func (p *tracker) Init()             { p.inits++ }

func (p *tracker) Update(dt float64) {
	*p.log = append(*p.log, p.name+".update")
	if p.onUpdate != nil {
		p.onUpdate()
	}
}

func (p *tracker) LateUpdate(dt float64) { *p.log = append(*p.log, p.name+".late") }

func (p *tracker) OnRemoved() {
	p.removed++
	*p.log = append(*p.log, p.name+".removed")
}

func (p *tracker) Cleanup() {
	p.cleaned++
	*p.log = append(*p.log, p.name+".cleanup")
}

type fakeRender struct {
	active   bool
	inits    int
	releases int
	batch    bramble.TileBatch
}

func (r *fakeRender) RenderActive() bool { return r.active }

func (r *fakeRender) InitRender(b bramble.TileBatch) {
	r.active = true
	r.inits++
	r.batch = b
}

func (r *fakeRender) ReleaseRender() {
	r.active = false
	r.releases++
}

func recordingBehavior(name string, log *[]string) BehaviorFuncs {
	return BehaviorFuncs{
		UpdateFunc:     func(e *Entity, dt float64) { *log = append(*log, name+".behavior") },
		LateUpdateFunc: func(e *Entity, dt float64) { *log = append(*log, name+".lateBehavior") },
	}
}

// observeLogs routes the engine logger into an observer for the test.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	bramble.SetLogger(zap.New(core))
	t.Cleanup(func() { bramble.SetLogger(nil) })
	return logs
}
