package bramble

import (
	"encoding/json"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string   `json:"action"`
	Label  string   `json:"label,omitempty"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	FromX  float64  `json:"fromX,omitempty"`
	FromY  float64  `json:"fromY,omitempty"`
	ToX    float64  `json:"toX,omitempty"`
	ToY    float64  `json:"toY,omitempty"`
	Frames int      `json:"frames,omitempty"`
	Key    string   `json:"key,omitempty"`
	Keys   []string `json:"keys,omitempty"`

	keys []Key
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input events across frames for automated
// testing. Call Step once per frame before the input device refreshes.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script. Supported actions are click,
// drag, hover, key, keys and wait. Key names are ebiten's ("Enter", "Tab",
// "ArrowUp", ...).
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("bramble: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("bramble: parse test script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "click", "drag", "hover", "wait":
		case "key", "keys":
			names := st.Keys
			if st.Action == "key" {
				names = []string{st.Key}
			}
			if len(names) == 0 {
				return nil, fmt.Errorf("bramble: parse test script: step %d: no keys", i)
			}
			for _, name := range names {
				var k ebiten.Key
				if err := k.UnmarshalText([]byte(name)); err != nil {
					return nil, fmt.Errorf("bramble: parse test script: step %d: key %q: %w", i, name, err)
				}
				st.keys = append(st.keys, Key(k))
			}
		default:
			return nil, fmt.Errorf("bramble: parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame, queueing events on in.
func (r *TestRunner) Step(in *VirtualInput) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if in.Pending() > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	if st.Label != "" {
		Log().Debug("test step", zap.String("label", st.Label), zap.String("action", st.Action))
	}

	switch st.Action {
	case "click":
		in.InjectClick(st.X, st.Y)
	case "drag":
		in.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "hover":
		in.InjectHover(st.X, st.Y)
	case "key", "keys":
		for _, k := range st.keys {
			in.InjectKey(k)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}
