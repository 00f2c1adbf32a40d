package componentregistry

import (
	"github.com/flowcore/microflo/component"
	"github.com/flowcore/microflo/packet"
)

// SerialOut writes every data packet it receives on port 0 to a hal.IO
// serial device, one byte per packet. It has no output ports.
type SerialOut struct {
	*component.Base
	dev int
}

// NewSerialOut constructs a SerialOut bound to serial device dev.
func NewSerialOut(dev int) *SerialOut {
	return &SerialOut{Base: component.NewBase(0), dev: dev}
}

// Process writes p's byte payload to the bound serial device. Setup and
// Tick packets produce no write.
func (s *SerialOut) Process(p packet.Packet, port component.Port) {
	if !p.IsData() {
		return
	}
	io := s.IO()
	if io == nil {
		return
	}
	io.SerialWrite(s.dev, p.AsByte())
}
