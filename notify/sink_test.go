package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcore/microflo/component"
	"github.com/flowcore/microflo/hostproto"
	"github.com/flowcore/microflo/network"
	"github.com/flowcore/microflo/packet"
)

type fakeTransport struct {
	bytes []byte
}

func (f *fakeTransport) SendCommandByte(b byte) error {
	f.bytes = append(f.bytes, b)
	return nil
}
func (f *fakeTransport) RunTick() {}

func (f *fakeTransport) frames() []hostproto.Frame {
	var out []hostproto.Frame
	for i := 0; i+hostproto.FrameSize <= len(f.bytes); i += hostproto.FrameSize {
		var fr hostproto.Frame
		copy(fr[:], f.bytes[i:i+hostproto.FrameSize])
		out = append(out, fr)
	}
	return out
}

type stubNode struct {
	*component.Base
}

func newStubNode() *stubNode { return &stubNode{Base: component.NewBase(2)} }
func (n *stubNode) Process(p packet.Packet, port component.Port) {}

func TestSink_NodeAddedEncodesIDAndParent(t *testing.T) {
	tr := &fakeTransport{}
	s := NewSink(tr)

	node := newStubNode()
	node.Bind(nil, 3, component.NoParent, nil)
	s.NodeAdded(node, component.NoParent)

	frames := tr.frames()
	require.Len(t, frames, 1)
	assert.Equal(t, byte(hostproto.RspNodeAdded), frames[0].Cmd())
	payload := frames[0].Payload()
	assert.Equal(t, byte(3), payload[0])
	assert.Equal(t, byte(component.NoParent), payload[1])
}

func TestSink_NetworkStateChangedEncodesState(t *testing.T) {
	tr := &fakeTransport{}
	s := NewSink(tr)

	s.NetworkStateChanged(network.Running)

	frames := tr.frames()
	require.Len(t, frames, 1)
	assert.Equal(t, byte(hostproto.RspNetworkStateChanged), frames[0].Cmd())
	assert.Equal(t, byte(network.Running), frames[0].Payload()[0])
}

func TestSink_PacketDeliveredRoundTripsPayload(t *testing.T) {
	tr := &fakeTransport{}
	s := NewSink(tr)

	msg := network.Message{TargetID: 5, TargetPort: 2, Packet: packet.Integer(-7)}
	s.PacketDelivered(0, msg)

	frames := tr.frames()
	require.Len(t, frames, 1)
	payload := frames[0].Payload()
	assert.Equal(t, byte(5), payload[0])
	assert.Equal(t, byte(2), payload[1])

	var value [4]byte
	copy(value[:], payload[3:7])
	got := hostproto.DecodePacket(payload[2], value)
	assert.True(t, packet.Integer(-7).Equal(got))
}

func TestSink_DiscardsEventsWithNoTransport(t *testing.T) {
	s := NewSink(nil)
	assert.NotPanics(t, func() {
		s.NetworkStateChanged(network.Running)
		s.EmitDebug(network.DebugLevelError, network.DebugInvalidNodeID)
	})
}

func TestSink_PortSubscriptionChangedEncodesEnableFlag(t *testing.T) {
	tr := &fakeTransport{}
	s := NewSink(tr)

	s.PortSubscriptionChanged(1, 0, true)
	s.PortSubscriptionChanged(1, 0, false)

	frames := tr.frames()
	require.Len(t, frames, 2)
	assert.Equal(t, byte(1), frames[0].Payload()[2])
	assert.Equal(t, byte(0), frames[1].Payload()[2])
}

// TestSink_SatisfiesHandlerInterfaces is a compile-time check that Sink
// implements both interfaces it needs to.
func TestSink_SatisfiesHandlerInterfaces(t *testing.T) {
	var _ network.NotificationHandler = (*Sink)(nil)
	var _ hostproto.FrameWriter = (*Sink)(nil)
}
