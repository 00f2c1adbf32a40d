package hostproto

import (
	"math"

	"github.com/flowcore/microflo/packet"
)

// FrameSize is the fixed width of every command and reply frame: one command
// byte followed by seven payload bytes.
const FrameSize = 8

// Frame is a single 8-byte unit of the host wire protocol.
type Frame [FrameSize]byte

// Cmd returns the frame's command byte.
func (f Frame) Cmd() byte { return f[0] }

// Payload returns the frame's seven payload bytes.
func (f Frame) Payload() [FrameSize - 1]byte {
	var p [FrameSize - 1]byte
	copy(p[:], f[1:])
	return p
}

// GraphCmd enumerates the commands the tool sends to mutate or query a
// running graph. Values are local to this module — bit-exact compatibility
// with an external tool's commandformat schema is out of scope, per spec.md
// §6.
type GraphCmd byte

// Payload layouts (all indices into Frame.Payload(), little-endian for
// multi-byte fields):
//
//	CmdCreateComponent:     [0]=component kind index  [1]=parent node id
//	CmdConnectNodes:        [0]=src node id  [1]=src port  [2]=target node id  [3]=target port
//	CmdConnectSubgraphPort: [0]=isOutput(0/1)  [1]=subgraph node id  [2]=subgraph port  [3]=child node id  [4]=child port
//	CmdSendPacket:          [0]=target node id  [1]=target port  [2]=packet kind  [3:7]=value
//	CmdSubscribeToPort:     [0]=node id  [1]=port  [2]=enable(0/1)
//	CmdSetDebugLevel:       [0]=level
//	CmdStartNetwork, CmdStopNetwork, CmdResetNetwork, CmdListComponents,
//	CmdListNodes, CmdListEdges: no payload
const (
	CmdInvalid GraphCmd = iota
	CmdCreateComponent
	CmdConnectNodes
	CmdConnectSubgraphPort
	CmdSendPacket
	CmdSubscribeToPort
	CmdSetDebugLevel
	CmdStartNetwork
	CmdStopNetwork
	CmdResetNetwork
	CmdListComponents
	CmdListNodes
	CmdListEdges
)

// RspCmd enumerates the reply frames the notification sink and the list
// commands emit back to the tool.
type RspCmd byte

const (
	RspInvalid RspCmd = iota
	RspNodeAdded
	RspNodesConnected
	RspSubgraphConnected
	RspNetworkStateChanged
	RspPacketSent
	RspPacketDelivered
	RspDebugEvent
	RspDebugLevelChanged
	RspPortSubscriptionChanged
	RspComponentListed
	RspNodeListed
	RspEdgeListed
	RspListEnd
)

// EncodeFrame builds a frame from a command byte and up to seven payload
// bytes, zero-padding the rest — the Go equivalent of the original source's
// padCommandWithNArguments: every reply is exactly one frame wide.
func EncodeFrame(cmd byte, payload ...byte) Frame {
	var f Frame
	f[0] = cmd
	n := len(payload)
	if n > FrameSize-1 {
		n = FrameSize - 1
	}
	copy(f[1:1+n], payload[:n])
	return f
}

// EncodePacketKind returns the wire byte for a packet's variant. Kind values
// are already a small uint8 enum, so the wire representation is the enum
// value itself.
func EncodePacketKind(p packet.Packet) byte { return byte(p.Kind()) }

// EncodePacketValue serializes a packet's scalar payload into up to four
// little-endian bytes, matching spec.md §6's "all numeric fields are
// little-endian" rule. Non-scalar variants (void, brackets, setup, tick)
// encode as all-zero.
func EncodePacketValue(p packet.Packet) [4]byte {
	var v [4]byte
	switch p.Kind() {
	case packet.KindBool:
		if p.AsBool() {
			v[0] = 1
		}
	case packet.KindByte, packet.KindAscii:
		v[0] = p.AsByte()
	case packet.KindInteger:
		putLE32(v[:], uint32(int32(p.AsInteger())))
	case packet.KindFloat:
		putLE32(v[:], math.Float32bits(p.AsFloat()))
	}
	return v
}

// DecodePacket reconstructs a packet from its wire kind byte and four
// little-endian value bytes, the inverse of EncodePacketKind/EncodePacketValue.
func DecodePacket(kind byte, value [4]byte) packet.Packet {
	switch packet.Kind(kind) {
	case packet.KindVoid:
		return packet.Void()
	case packet.KindBool:
		return packet.Bool(value[0] != 0)
	case packet.KindAscii:
		return packet.Ascii(value[0])
	case packet.KindByte:
		return packet.Byte(value[0])
	case packet.KindInteger:
		return packet.Integer(int64(int32(getLE32(value[:]))))
	case packet.KindFloat:
		return packet.Float(math.Float32frombits(getLE32(value[:])))
	case packet.KindStartBracket:
		return packet.StartBracket()
	case packet.KindEndBracket:
		return packet.EndBracket()
	default:
		return packet.Invalid()
	}
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func getLE32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
