package componentregistry

import (
	"github.com/flowcore/microflo/component"
	"github.com/flowcore/microflo/packet"
)

// ToggleBoolean emits the logical negation of every boolean packet it
// receives on port 0, on its own port 0. state holds the value that would
// be emitted next if asked before any packet arrives; construction-time
// initial seeds it, matching spec.md's S2 scenario ("ToggleBoolean
// initial=false").
type ToggleBoolean struct {
	*component.Base
	state bool
}

// NewToggleBoolean constructs a ToggleBoolean seeded with initial.
func NewToggleBoolean(initial bool) *ToggleBoolean {
	return &ToggleBoolean{Base: component.NewBase(1), state: initial}
}

// Process negates incoming boolean packets and sends the result on port 0.
// Setup and Tick packets, and any non-boolean data, are ignored.
func (t *ToggleBoolean) Process(p packet.Packet, port component.Port) {
	if !p.IsBool() {
		return
	}
	t.state = !p.AsBool()
	t.Send(t, packet.Bool(t.state), 0)
}
