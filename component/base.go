package component

import (
	"github.com/flowcore/microflo/hal"
	"github.com/flowcore/microflo/packet"
)

// NodeID identifies a registered node. 0 is reserved to mean "no parent".
type NodeID uint8

// NoParent is the parent id of a top-level node.
const NoParent NodeID = 0

// Port indexes a node's input or output port.
type Port int

// Node is the capability every component instance must satisfy. The network
// stores handles polymorphic over this interface rather than a base class,
// per the polymorphism-as-capability design note.
type Node interface {
	Process(p packet.Packet, port Port)
}

// Connection is a per-output-port fan-out record.
type Connection struct {
	Target     Node
	TargetID   NodeID
	TargetPort Port
	Subscribed bool
	connected  bool
}

// Sender is the narrow capability Base needs from its owning network:
// submit a Message for delivery. Network implements Sender; this package
// does not import network, so the relationship stays a borrowed handle
// bound once at registration rather than a dependency cycle.
type Sender interface {
	SendMessage(target Node, targetPort Port, p packet.Packet, sender Node, senderPort Port)
}

// Base provides the fan-out table and send primitive shared by every
// concrete component. Embed it; it never allocates after NewBase.
type Base struct {
	id          NodeID
	parentID    NodeID
	network     Sender
	io          hal.IO
	connections []Connection
}

// NewBase allocates a Base with a fan-out table sized to numPorts. A
// component that sends on at most one port still needs numPorts == 1 for
// that port to have a connection slot.
func NewBase(numPorts int) *Base {
	if numPorts < 0 {
		numPorts = 0
	}
	return &Base{connections: make([]Connection, numPorts)}
}

// ID returns the node id assigned at registration, or 0 if unbound.
func (b *Base) ID() NodeID { return b.id }

// ParentID returns the containing subgraph's node id, or NoParent.
func (b *Base) ParentID() NodeID { return b.parentID }

// IO returns the hardware interface bound at registration.
func (b *Base) IO() hal.IO { return b.io }

// Unwrap returns the Base itself. Embedding promotes this method onto any
// concrete component, which lets generic code (e.g. the network package's
// subgraph wiring) recover the shared *Base pointer from a component.Node
// handle without needing to know the concrete component type.
func (b *Base) Unwrap() *Base { return b }

// Network returns the sender handle bound at registration. Most components
// never need this directly — Send covers the normal fan-out case — but a
// component like Subgraph that routes by a table other than its own
// fan-out (forwarding to a *different* child per input port) needs to reach
// the network directly.
func (b *Base) Network() Sender { return b.network }

// Bind is called exactly once by the network at registration time; it binds
// identity and the network handle.
func (b *Base) Bind(net Sender, id NodeID, parentID NodeID, io hal.IO) {
	b.network = net
	b.id = id
	b.parentID = parentID
	b.io = io
}

// Connect sets outPort's fan-out target, overwriting any previous target on
// that port: output connections are single-valued per port. Out-of-range
// ports are silently ignored, matching the subgraph boundary's port-range
// failure mode.
func (b *Base) Connect(outPort Port, target Node, targetID NodeID, targetPort Port) {
	if !b.inRange(outPort) {
		return
	}
	b.connections[outPort] = Connection{
		Target: target, TargetID: targetID, TargetPort: targetPort, connected: true,
	}
}

// Subscribe toggles host-visible packet tracing on outPort. Returns false if
// outPort is out of range.
func (b *Base) Subscribe(outPort Port, enable bool) bool {
	if !b.inRange(outPort) {
		return false
	}
	b.connections[outPort].Subscribed = enable
	return true
}

// ConnectionAt returns the fan-out entry for outPort and whether it is
// connected to a target.
func (b *Base) ConnectionAt(outPort Port) (Connection, bool) {
	if !b.inRange(outPort) {
		return Connection{}, false
	}
	c := b.connections[outPort]
	return c, c.connected
}

// NumPorts returns the size of the fan-out table.
func (b *Base) NumPorts() int { return len(b.connections) }

func (b *Base) inRange(port Port) bool {
	return int(port) >= 0 && int(port) < len(b.connections)
}

// Send looks up outPort's fan-out entry and, if connected, submits a
// message via the network. self must be the concrete component embedding
// this Base, since Base itself does not satisfy Node — it is needed as the
// sender identity for subscription tracing.
func (b *Base) Send(self Node, p packet.Packet, outPort Port) {
	c, ok := b.ConnectionAt(outPort)
	if !ok || b.network == nil {
		return
	}
	b.network.SendMessage(c.Target, c.TargetPort, p, self, outPort)
}
