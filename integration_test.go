package microflo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcore/microflo/component"
	"github.com/flowcore/microflo/network"
	"github.com/flowcore/microflo/packet"
	"github.com/flowcore/microflo/subgraph"
	"github.com/flowcore/microflo/testutil"
)

// TestScenarioS1_EmptyTickDeliversOnlySyntheticTick exercises S1 end to end
// through the public testutil fixture, confirming that a freshly started
// graph writes nothing to the serial device on its first empty tick.
func TestScenarioS1_EmptyTickDeliversOnlySyntheticTick(t *testing.T) {
	g, err := testutil.BuildToggleSerialGraph()
	require.NoError(t, err)

	g.Net.RunTick()

	assert.Empty(t, g.IO.SerialOutput(0))
}

// TestScenarioS3_OverflowDropsNewestMessage exercises S3: once the message
// ring is saturated, additional sends are dropped rather than displacing an
// already-queued one.
func TestScenarioS3_OverflowDropsNewestMessage(t *testing.T) {
	net, err := network.New(network.WithCapacities(network.DefaultMaxNodes, 1))
	require.NoError(t, err)
	h := testutil.NewRecordingHandler()
	net.SetNotificationHandler(h)

	target := &captureNode{Base: component.NewBase(1)}
	id := net.AddNode(target, component.NoParent)
	targetNode, _ := net.NodeByID(id)
	net.Start()
	target.received = nil // Start() already delivered a synthetic Setup

	net.SendMessage(targetNode, 0, packet.Integer(1), nil, 0)
	net.SendMessage(targetNode, 0, packet.Integer(2), nil, 0)

	assert.Contains(t, h.Names(), "debug:message queue full")

	net.RunTick()
	require.Len(t, target.received, 2) // the one surviving data packet + the synthetic Tick
	assert.True(t, packet.Integer(1).Equal(target.received[0]))
}

// TestScenarioS5_SubgraphForwardsAfterOwnProcess exercises S5: a subgraph's
// own Process observes an externally-addressed packet on its boundary port
// before forwarding it into the child it's wired to, one tick later.
func TestScenarioS5_SubgraphForwardsAfterOwnProcess(t *testing.T) {
	net, err := network.New()
	require.NoError(t, err)

	sg := subgraph.New()
	child := &captureNode{Base: component.NewBase(1)}

	sgID := net.AddNode(sg, component.NoParent)
	childID := net.AddNode(child, sgID)

	net.ConnectSubgraph(false, sgID, 0, childID, 0)
	net.Start()
	child.received = nil // Start() already delivered a synthetic Setup to every node, child included

	sgNode, _ := net.NodeByID(sgID)
	net.SendMessage(sgNode, 0, packet.Integer(42), nil, 0)

	// Tick 1: the subgraph's own Process sees packet.Integer(42) and enqueues
	// the forward to child, but every node (child included) also gets this
	// tick's synthetic Tick regardless, so child.received is non-empty
	// without yet holding the forwarded packet.
	net.RunTick()
	assert.False(t, containsInteger(child.received, 42), "the child has not been reached yet")

	// Tick 2: the forward enqueued during tick 1 is now delivered, alongside
	// this tick's own synthetic Tick.
	net.RunTick()
	assert.True(t, containsInteger(child.received, 42), "the forwarded packet arrives one tick after the subgraph itself saw it")
}

func containsInteger(received []packet.Packet, want int64) bool {
	for _, p := range received {
		if p.IsInteger() && packet.Integer(want).Equal(p) {
			return true
		}
	}
	return false
}

// TestScenarioS6_SubscriptionGatesPacketSentNotification exercises S6: a
// PacketSent notification fires for a send only once its source edge has
// been subscribed.
func TestScenarioS6_SubscriptionGatesPacketSentNotification(t *testing.T) {
	net, err := network.New()
	require.NoError(t, err)
	h := testutil.NewRecordingHandler()
	net.SetNotificationHandler(h)

	src := &captureNode{Base: component.NewBase(1)}
	dst := &captureNode{Base: component.NewBase(1)}
	srcID := net.AddNode(src, component.NoParent)
	dstID := net.AddNode(dst, component.NoParent)
	net.ConnectByID(srcID, 0, dstID, 0)
	net.Start()

	srcNode, _ := net.NodeByID(srcID)
	dstNode, _ := net.NodeByID(dstID)

	net.SendMessage(dstNode, 0, packet.Void(), srcNode, 0)
	assert.NotContains(t, h.Names(), "packetSent")

	net.SubscribeToPort(srcID, 0, true)
	net.SendMessage(dstNode, 0, packet.Void(), srcNode, 0)
	assert.Contains(t, h.Names(), "packetSent")
}

// captureNode records every packet delivered to it, in order.
type captureNode struct {
	*component.Base
	received []packet.Packet
}

func (c *captureNode) Process(p packet.Packet, port component.Port) {
	c.received = append(c.received, p)
}
