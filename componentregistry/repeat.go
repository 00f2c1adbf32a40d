package componentregistry

import (
	"github.com/flowcore/microflo/component"
	"github.com/flowcore/microflo/packet"
)

// Repeat forwards every data packet received on port 0 unchanged, on its
// own port 0 — plumbing used to fan a single source into test graphs without
// the source needing to know its own fan-out.
type Repeat struct {
	*component.Base
}

// NewRepeat constructs a Repeat node.
func NewRepeat() *Repeat {
	return &Repeat{Base: component.NewBase(1)}
}

// Process forwards p unchanged. Setup and Tick packets are not forwarded.
func (r *Repeat) Process(p packet.Packet, port component.Port) {
	if !p.IsData() {
		return
	}
	r.Send(r, p, 0)
}
