package componentregistry

import (
	"github.com/flowcore/microflo/component"
	"github.com/flowcore/microflo/packet"
)

// DummyComponent accepts any packet on any port and emits nothing, mirroring
// the original source's Components::DummyComponent — used as filler when a
// graph needs a node id with no behavior, e.g. exercising the node table or
// standing in for an unimplemented component kind during development.
type DummyComponent struct {
	*component.Base
}

// NewDummyComponent constructs a DummyComponent with a single unused port.
func NewDummyComponent() *DummyComponent {
	return &DummyComponent{Base: component.NewBase(1)}
}

// Process does nothing.
func (d *DummyComponent) Process(p packet.Packet, port component.Port) {}
