// Package subgraph implements the boundary component that forwards packets
// between an external port space and child nodes nested inside it, so a
// composite graph can be dropped into a larger one without its internal
// wiring leaking through.
package subgraph

import (
	"github.com/flowcore/microflo/component"
	"github.com/flowcore/microflo/packet"
)

// MaxPorts is the fixed capacity of a subgraph's boundary, per direction.
const MaxPorts = 10

// inputRoute maps one external input port to the child node/port that
// should receive it.
type inputRoute struct {
	child     component.Node
	childPort component.Port
	connected bool
}

// Subgraph is a Node whose Process forwards on the input side, and whose
// ConnectOutport rewires a child's own output connection to point back at
// the subgraph rather than transforming data itself. It embeds component.Base
// like any other component, so ID/IO/Connect/Send are all promoted.
type Subgraph struct {
	*component.Base
	inputs [MaxPorts]inputRoute
}

// New constructs a Subgraph. It has no data ports of its own beyond the
// fixed MaxPorts boundary — its Base exists only so it participates in the
// network like any other node (identity, IO handle).
func New() *Subgraph {
	return &Subgraph{Base: component.NewBase(MaxPorts)}
}

// ConnectInport wires external input port inPort to child's childPort. Out
// of range ports are silently ignored with no side effect, matching the
// subgraph boundary's documented failure mode.
func (s *Subgraph) ConnectInport(inPort component.Port, child component.Node, childPort component.Port) {
	if int(inPort) < 0 || int(inPort) >= MaxPorts {
		return
	}
	s.inputs[inPort] = inputRoute{child: child, childPort: childPort, connected: true}
}

// ConnectOutport configures childPort on child so that when child sends on
// that port, the packet arrives at the subgraph's own Process with target
// port outPort, which then forwards it out through the subgraph's external
// output connection at outPort. Concretely: it rewires the child's output
// fan-out entry to target the subgraph itself at port outPort.
func (s *Subgraph) ConnectOutport(outPort component.Port, child *component.Base, childOutPort component.Port) {
	if int(outPort) < 0 || int(outPort) >= MaxPorts {
		return
	}
	child.Connect(childOutPort, s, s.ID(), outPort)
}

// Process implements component.Node. A given port index is, by graph
// construction, exclusively either an input or an output boundary port, so
// Process disambiguates by which table has a route installed:
//
//   - Input direction: a packet arriving on external input port `port` is
//     forwarded, unchanged, to the child route ConnectInport mapped there.
//   - Output direction: ConnectOutport rewires a child's own fan-out entry
//     to target the subgraph itself at `port`; when that fires, there is no
//     inputs[port] route, so Process falls through to the subgraph's own
//     Send, which forwards via whatever Base.connections[port] ordinary
//     wiring (connect(subgraphNode, port, externalTarget, externalPort))
//     configured as the subgraph's external output.
//
// Either way the subgraph itself performs no data transformation.
func (s *Subgraph) Process(p packet.Packet, port component.Port) {
	if int(port) < 0 || int(port) >= MaxPorts {
		return
	}
	if route := s.inputs[port]; route.connected {
		if sender := s.Network(); sender != nil {
			sender.SendMessage(route.child, route.childPort, p, s, port)
		}
		return
	}
	s.Send(s, p, port)
}
