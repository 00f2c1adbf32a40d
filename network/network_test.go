package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcore/microflo/component"
	"github.com/flowcore/microflo/packet"
)

type recordingNode struct {
	*component.Base
	received []packet.Packet
}

func newRecordingNode() *recordingNode {
	return &recordingNode{Base: component.NewBase(1)}
}

func (n *recordingNode) Process(p packet.Packet, port component.Port) {
	n.received = append(n.received, p)
}

// TestRunTick_EmptyRingDeliversOnlyTickPackets covers S1: a tick with no
// queued messages still delivers a synthetic Tick packet to every node and
// emits no PacketDelivered notifications.
func TestRunTick_EmptyRingDeliversOnlyTickPackets(t *testing.T) {
	net, err := New()
	require.NoError(t, err)
	h := &recordingHandler{}
	net.SetNotificationHandler(h)

	node := newRecordingNode()
	net.AddNode(node, component.NoParent)
	net.Start()
	node.received = nil

	net.RunTick()

	require.Len(t, node.received, 1)
	assert.True(t, packet.Tick().Equal(node.received[0]))
	assert.NotContains(t, h.events, "packetDelivered")
}

// TestSendMessage_OverflowDropsNewestAndEmitsDebug covers S3: once the ring
// is full, further sends are dropped (not the oldest queued message) and a
// DebugMessageQueueFull event fires.
func TestSendMessage_OverflowDropsNewestAndEmitsDebug(t *testing.T) {
	net, err := New(WithCapacities(DefaultMaxNodes, 2))
	require.NoError(t, err)
	h := &recordingHandler{}
	net.SetNotificationHandler(h)

	target := newRecordingNode()
	id := net.AddNode(target, component.NoParent)
	targetNode, _ := net.NodeByID(id)
	net.Start()

	net.SendMessage(targetNode, 0, packet.Integer(1), nil, 0)
	net.SendMessage(targetNode, 0, packet.Integer(2), nil, 0)
	net.SendMessage(targetNode, 0, packet.Integer(3), nil, 0)

	assert.Contains(t, h.events, "debug:message queue full")

	target.received = nil
	net.RunTick()
	require.Len(t, target.received, 3) // 2 queued data packets + synthetic Tick
	assert.True(t, packet.Integer(1).Equal(target.received[0]))
	assert.True(t, packet.Integer(2).Equal(target.received[1]))
}

// TestSubscribeToPort_GatesPacketSentNotification covers S6: PacketSent only
// fires for a send whose source edge has been subscribed.
func TestSubscribeToPort_GatesPacketSentNotification(t *testing.T) {
	net, err := New()
	require.NoError(t, err)
	h := &recordingHandler{}
	net.SetNotificationHandler(h)

	src := newRecordingNode()
	dst := newRecordingNode()
	srcID := net.AddNode(src, component.NoParent)
	dstID := net.AddNode(dst, component.NoParent)
	net.ConnectByID(srcID, 0, dstID, 0)
	net.Start()

	srcNode, _ := net.NodeByID(srcID)
	dstNode, _ := net.NodeByID(dstID)

	net.SendMessage(dstNode, 0, packet.Void(), srcNode, 0)
	assert.NotContains(t, h.events, "packetSent")

	net.SubscribeToPort(srcID, 0, true)
	assert.Contains(t, h.events, "portSubscriptionChanged")

	net.SendMessage(dstNode, 0, packet.Void(), srcNode, 0)
	assert.Contains(t, h.events, "packetSent")
}

// TestRunTick_BatchSnapshotDefersPacketsEnqueuedDuringTick covers the
// batch-snapshot invariant: a node's own Process sending a new message
// during a tick does not get delivered until the following tick.
func TestRunTick_BatchSnapshotDefersPacketsEnqueuedDuringTick(t *testing.T) {
	net, err := New()
	require.NoError(t, err)

	resend := &resendingNode{Base: component.NewBase(1)}
	id := net.AddNode(resend, component.NoParent)
	self, _ := net.NodeByID(id)
	resend.self = self
	resend.net = net
	net.Start()
	resend.processCount = 0 // Start() already delivered a synthetic Setup

	net.SendMessage(self, 0, packet.Integer(1), nil, 0)

	net.RunTick()
	assert.Equal(t, 2, resend.processCount, "the queued packet plus the synthetic Tick are delivered this tick")

	net.RunTick()
	assert.Equal(t, 4, resend.processCount, "tick 2 delivers the re-sent packet plus its own synthetic Tick")
}

type resendingNode struct {
	*component.Base
	net          *Network
	self         component.Node
	processCount int
}

func (n *resendingNode) Process(p packet.Packet, port component.Port) {
	n.processCount++
	if p.IsInteger() {
		n.net.SendMessage(n.self, 0, packet.Void(), nil, 0)
	}
}

// recordingHandler is a local, minimal NotificationHandler double; kept
// separate from testutil.RecordingHandler to avoid an import cycle (this
// package is one of testutil's own dependencies).
type recordingHandler struct {
	events []string
}

func (r *recordingHandler) EmitDebug(level DebugLevel, id DebugID) {
	r.events = append(r.events, "debug:"+id.String())
}
func (r *recordingHandler) DebugChanged(level DebugLevel) {
	r.events = append(r.events, "debugLevelChanged")
}
func (r *recordingHandler) PacketSent(index int, msg Message, sender component.Node, senderPort component.Port) {
	r.events = append(r.events, "packetSent")
}
func (r *recordingHandler) PacketDelivered(index int, msg Message) {
	r.events = append(r.events, "packetDelivered")
}
func (r *recordingHandler) NodeAdded(n component.Node, parentID component.NodeID) {
	r.events = append(r.events, "nodeAdded")
}
func (r *recordingHandler) NodesConnected(srcID component.NodeID, srcPort component.Port, targetID component.NodeID, targetPort component.Port) {
	r.events = append(r.events, "nodesConnected")
}
func (r *recordingHandler) NetworkStateChanged(s State) {
	r.events = append(r.events, "networkStateChanged:"+s.String())
}
func (r *recordingHandler) SubgraphConnected(isOutput bool, subgraphNode component.NodeID, subgraphPort component.Port, childNode component.NodeID, childPort component.Port) {
	r.events = append(r.events, "subgraphConnected")
}
func (r *recordingHandler) PortSubscriptionChanged(nodeID component.NodeID, portID component.Port, enable bool) {
	r.events = append(r.events, "portSubscriptionChanged")
}

var _ NotificationHandler = (*recordingHandler)(nil)
