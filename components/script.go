package components

import (
	"fmt"

	"github.com/phanxgames/bramble"
	"github.com/phanxgames/bramble/ecs"
	"github.com/robertkrimen/otto"
	"go.uber.org/zap"
)

// ScriptKey is the component key of Script.
var ScriptKey = ecs.KeyOf("script")

// Script runs JavaScript hooks against the entity's Transform. The source
// must define update(dt) and may define lateUpdate(dt). Scripts see these
// globals:
//
//	x(), y()          current position
//	setPosition(x, y) move to a point
//	move(dx, dy)      move by a delta
//	log(msg)          write to the engine log
//
// A runtime error logs a warning and disables the component.
type Script struct {
	ecs.BaseComponent

	name       string
	vm         *otto.Otto
	update     otto.Value
	lateUpdate otto.Value
	hasLate    bool
}

// NewScript compiles and runs src. name identifies the script in logs.
func NewScript(name, src string) (*Script, error) {
	s := &Script{name: name, vm: otto.New()}
	if err := s.bind(); err != nil {
		return nil, fmt.Errorf("components: script %q: %w", name, err)
	}
	if _, err := s.vm.Run(src); err != nil {
		return nil, fmt.Errorf("components: script %q: %w", name, err)
	}
	update, err := s.vm.Get("update")
	if err != nil || !update.IsFunction() {
		return nil, fmt.Errorf("components: script %q: no update function", name)
	}
	s.update = update
	if late, err := s.vm.Get("lateUpdate"); err == nil && late.IsFunction() {
		s.lateUpdate = late
		s.hasLate = true
	}
	return s, nil
}

// Key returns ScriptKey.
func (s *Script) Key() ecs.ComponentKey { return ScriptKey }

// Name returns the script name.
func (s *Script) Name() string { return s.name }

// Update calls the script's update(dt).
func (s *Script) Update(dt float64) {
	s.call(s.update, "update", dt)
}

// LateUpdate calls the script's lateUpdate(dt), if defined.
func (s *Script) LateUpdate(dt float64) {
	if s.hasLate {
		s.call(s.lateUpdate, "lateUpdate", dt)
	}
}

func (s *Script) call(fn otto.Value, hook string, dt float64) {
	if _, err := fn.Call(otto.NullValue(), dt); err != nil {
		bramble.Log().Warn("script error, disabling",
			zap.String("script", s.name),
			zap.String("hook", hook),
			zap.String("entity", s.entityID()),
			zap.Error(err),
		)
		s.SetEnabled(false)
	}
}

func (s *Script) entityID() string {
	if e := s.Entity(); e != nil {
		return e.ID()
	}
	return ""
}

func (s *Script) bind() error {
	number := func(v float64) otto.Value {
		out, _ := s.vm.ToValue(v)
		return out
	}
	arg := func(call otto.FunctionCall, i int) float64 {
		f, _ := call.Argument(i).ToFloat()
		return f
	}
	globals := map[string]func(otto.FunctionCall) otto.Value{
		"x": func(otto.FunctionCall) otto.Value {
			if t := TransformOf(s.Entity()); t != nil {
				return number(t.X)
			}
			return number(0)
		},
		"y": func(otto.FunctionCall) otto.Value {
			if t := TransformOf(s.Entity()); t != nil {
				return number(t.Y)
			}
			return number(0)
		},
		"setPosition": func(call otto.FunctionCall) otto.Value {
			if t := TransformOf(s.Entity()); t != nil {
				t.SetPosition(arg(call, 0), arg(call, 1))
			}
			return otto.UndefinedValue()
		},
		"move": func(call otto.FunctionCall) otto.Value {
			if t := TransformOf(s.Entity()); t != nil {
				t.Translate(arg(call, 0), arg(call, 1))
			}
			return otto.UndefinedValue()
		},
		"log": func(call otto.FunctionCall) otto.Value {
			bramble.Log().Info(call.Argument(0).String(),
				zap.String("script", s.name), zap.String("entity", s.entityID()))
			return otto.UndefinedValue()
		},
	}
	for name, fn := range globals {
		if err := s.vm.Set(name, fn); err != nil {
			return err
		}
	}
	return nil
}
