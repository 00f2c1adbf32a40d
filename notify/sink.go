// Package notify implements the notification sink a host tool observes a
// running network through: it satisfies network.NotificationHandler,
// encodes every event into an 8-byte reply frame, and pushes each frame
// byte-by-byte through an installed transport.Transport — the same shape as
// the original source's HostCommunication, generalized from one virtual
// dispatch table to two small Go interfaces.
package notify

import (
	"sync"

	"github.com/flowcore/microflo/component"
	"github.com/flowcore/microflo/hostproto"
	"github.com/flowcore/microflo/network"
	"github.com/flowcore/microflo/notify/transport"
)

// identifiable is satisfied by any node embedding component.Base. Used to
// recover a node's id for event encoding without network or component
// exposing a general id-lookup by value.
type identifiable interface {
	ID() component.NodeID
}

// Sink mirrors every network.NotificationHandler event onto a
// transport.Transport as framed replies. It is safe for concurrent use,
// though in practice only the network's own (single-threaded) event
// delivery ever calls it.
type Sink struct {
	mu sync.Mutex
	tr transport.Transport
}

// NewSink builds a sink that writes every event to tr. tr may be nil, in
// which case every event is silently discarded — useful for networks run
// without a host attached.
func NewSink(tr transport.Transport) *Sink {
	return &Sink{tr: tr}
}

// SetTransport swaps the installed transport, e.g. once a CLI has finished
// connecting a deferred transport such as NATS.
func (s *Sink) SetTransport(tr transport.Transport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tr = tr
}

// WriteFrame pushes f through the installed transport one byte at a time,
// satisfying hostproto.FrameWriter so the same sink also answers the
// request/reply list commands.
func (s *Sink) WriteFrame(f hostproto.Frame) {
	s.mu.Lock()
	tr := s.tr
	s.mu.Unlock()
	if tr == nil {
		return
	}
	for _, b := range f {
		_ = tr.SendCommandByte(b)
	}
}

func idOf(n component.Node) component.NodeID {
	if id, ok := n.(identifiable); ok {
		return id.ID()
	}
	return 0
}

// EmitDebug mirrors the debug plane's events.
func (s *Sink) EmitDebug(level network.DebugLevel, id network.DebugID) {
	s.WriteFrame(hostproto.EncodeFrame(byte(hostproto.RspDebugEvent), byte(level), byte(id)))
}

// DebugChanged mirrors a change to the debug level threshold.
func (s *Sink) DebugChanged(level network.DebugLevel) {
	s.WriteFrame(hostproto.EncodeFrame(byte(hostproto.RspDebugLevelChanged), byte(level)))
}

// PacketSent mirrors a subscribed output port firing.
func (s *Sink) PacketSent(index int, msg network.Message, sender component.Node, senderPort component.Port) {
	kind := hostproto.EncodePacketKind(msg.Packet)
	value := hostproto.EncodePacketValue(msg.Packet)
	s.WriteFrame(hostproto.EncodeFrame(byte(hostproto.RspPacketSent),
		byte(idOf(sender)), byte(senderPort), kind, value[0], value[1], value[2], value[3]))
}

// PacketDelivered mirrors a message leaving the ring and reaching a node's
// Process method.
func (s *Sink) PacketDelivered(index int, msg network.Message) {
	kind := hostproto.EncodePacketKind(msg.Packet)
	value := hostproto.EncodePacketValue(msg.Packet)
	s.WriteFrame(hostproto.EncodeFrame(byte(hostproto.RspPacketDelivered),
		byte(msg.TargetID), byte(msg.TargetPort), kind, value[0], value[1], value[2], value[3]))
}

// NodeAdded mirrors a successful AddNode.
func (s *Sink) NodeAdded(n component.Node, parentID component.NodeID) {
	s.WriteFrame(hostproto.EncodeFrame(byte(hostproto.RspNodeAdded), byte(idOf(n)), byte(parentID)))
}

// NodesConnected mirrors a successful ConnectByID/Connect.
func (s *Sink) NodesConnected(srcID component.NodeID, srcPort component.Port, targetID component.NodeID, targetPort component.Port) {
	s.WriteFrame(hostproto.EncodeFrame(byte(hostproto.RspNodesConnected),
		byte(srcID), byte(srcPort), byte(targetID), byte(targetPort)))
}

// NetworkStateChanged mirrors a Start/Stop/Reset transition.
func (s *Sink) NetworkStateChanged(st network.State) {
	s.WriteFrame(hostproto.EncodeFrame(byte(hostproto.RspNetworkStateChanged), byte(st)))
}

// SubgraphConnected mirrors a successful ConnectSubgraph.
func (s *Sink) SubgraphConnected(isOutput bool, subgraphNode component.NodeID, subgraphPort component.Port, childNode component.NodeID, childPort component.Port) {
	var out byte
	if isOutput {
		out = 1
	}
	s.WriteFrame(hostproto.EncodeFrame(byte(hostproto.RspSubgraphConnected),
		out, byte(subgraphNode), byte(subgraphPort), byte(childNode), byte(childPort)))
}

// PortSubscriptionChanged mirrors a SubscribeToPort toggle.
func (s *Sink) PortSubscriptionChanged(nodeID component.NodeID, portID component.Port, enable bool) {
	var en byte
	if enable {
		en = 1
	}
	s.WriteFrame(hostproto.EncodeFrame(byte(hostproto.RspPortSubscriptionChanged), byte(nodeID), byte(portID), en))
}
