// Package hostproto implements the framed byte protocol a host tool uses to
// construct, mutate, inspect, and debug a running network: an 8-byte fixed
// frame format, a resynchronizing byte-driven parser, and the command set
// that drives network.Network and component.Registry.
package hostproto

import (
	"github.com/flowcore/microflo/component"
	"github.com/flowcore/microflo/network"
)

// state names the parser's position in the magic-then-frames state machine
// spec.md §4.F describes.
type state int

const (
	lookForHeader state = iota
	parseHeader
	parseCmd
)

// Magic is the fixed sentinel the tool sends once, before its first command
// frame, to resynchronize the parser. Any byte stream may be preceded by
// garbage (line noise on a serial link, a partial previous session); the
// parser discards bytes until it sees this sequence in full.
var Magic = [FrameSize]byte{0xA5, 0x5A, 0xA5, 0x5A, 0xA5, 0x5A, 0xA5, 0x5A}

// FrameWriter receives reply frames, emitted one byte at a time to mirror
// the original source's sendCommandByte. notify.Sink implements this.
type FrameWriter interface {
	WriteFrame(f Frame)
}

// portEdges is satisfied by any node built on component.Base: the parser
// uses it to answer list-edges queries without the network package needing
// to expose its private connection tables.
type portEdges interface {
	NumPorts() int
	ConnectionAt(port component.Port) (component.Connection, bool)
}

// Parser drives a network and component registry from a byte stream. It
// must only ever be fed from a single goroutine — spec.md §5's
// single-threaded cooperative model extends to the host link: a reader
// goroutine may drain a serial port or NATS subscription into a channel, but
// only the main loop calls Feed.
type Parser struct {
	net      *network.Network
	registry *component.Registry
	reply    FrameWriter

	st       state
	magicPos int
	buf      Frame
	bufPos   int

	kindOf map[component.NodeID]string
}

// NewParser constructs a parser bound to a network and the component
// registry its CreateComponent command instantiates from.
func NewParser(net *network.Network, registry *component.Registry) *Parser {
	return &Parser{
		net:      net,
		registry: registry,
		kindOf:   make(map[component.NodeID]string),
	}
}

// SetReplyWriter installs the sink that list-query replies are written to.
// Event-driven replies (node added, packet sent, …) go through
// network.SetNotificationHandler instead; this covers the request/reply
// commands (ListComponents/ListNodes/ListEdges) that have no corresponding
// network event.
func (p *Parser) SetReplyWriter(w FrameWriter) { p.reply = w }

// Feed advances the parser state machine by one byte, dispatching a command
// whenever a full frame has been assembled.
func (p *Parser) Feed(b byte) {
	switch p.st {
	case lookForHeader, parseHeader:
		if b == Magic[p.magicPos] {
			p.magicPos++
			if p.magicPos == len(Magic) {
				p.st = parseCmd
				p.magicPos = 0
			} else {
				p.st = parseHeader
			}
			return
		}
		// Mismatch: restart resync from scratch. A byte that happens to
		// match Magic[0] restarts the match at position 1 immediately.
		// Per spec: mis-framed bytes before sync have no side effect, not
		// even a debug event — the tool is expected to just keep sending
		// magic until the parser locks on.
		p.st = lookForHeader
		p.magicPos = 0
		if b == Magic[0] {
			p.magicPos = 1
			p.st = parseHeader
		}
	case parseCmd:
		p.buf[p.bufPos] = b
		p.bufPos++
		if p.bufPos == FrameSize {
			frame := p.buf
			p.bufPos = 0
			p.dispatch(frame)
		}
	}
}

// FeedAll feeds every byte of data in order.
func (p *Parser) FeedAll(data []byte) {
	for _, b := range data {
		p.Feed(b)
	}
}

func (p *Parser) dispatch(f Frame) {
	payload := f.Payload()
	switch GraphCmd(f.Cmd()) {
	case CmdCreateComponent:
		p.handleCreateComponent(payload)
	case CmdConnectNodes:
		p.net.ConnectByID(
			component.NodeID(payload[0]), component.Port(payload[1]),
			component.NodeID(payload[2]), component.Port(payload[3]),
		)
	case CmdConnectSubgraphPort:
		p.net.ConnectSubgraph(
			payload[0] != 0,
			component.NodeID(payload[1]), component.Port(payload[2]),
			component.NodeID(payload[3]), component.Port(payload[4]),
		)
	case CmdSendPacket:
		p.handleSendPacket(payload)
	case CmdSubscribeToPort:
		p.net.SubscribeToPort(component.NodeID(payload[0]), component.Port(payload[1]), payload[2] != 0)
	case CmdSetDebugLevel:
		p.net.SetDebugLevel(network.DebugLevel(payload[0]))
	case CmdStartNetwork:
		p.net.Start()
	case CmdStopNetwork:
		p.net.Stop()
	case CmdResetNetwork:
		p.kindOf = make(map[component.NodeID]string)
		p.net.Reset()
	case CmdListComponents:
		p.handleListComponents()
	case CmdListNodes:
		p.handleListNodes()
	case CmdListEdges:
		p.handleListEdges()
	default:
		p.net.EmitDebug(network.DebugLevelError, network.DebugInvalidNodeID)
	}
}

func (p *Parser) handleCreateComponent(payload [FrameSize - 1]byte) {
	kindIndex := int(payload[0])
	parentID := component.NodeID(payload[1])

	kinds := p.registry.Kinds()
	if kindIndex < 0 || kindIndex >= len(kinds) {
		p.net.EmitDebug(network.DebugLevelError, network.DebugInvalidNodeID)
		return
	}
	kind := kinds[kindIndex]

	node, err := p.registry.Create(kind, 0)
	if err != nil {
		p.net.EmitDebug(network.DebugLevelError, network.DebugInvalidNodeID)
		return
	}

	id := p.net.AddNode(node, parentID)
	if id != 0 {
		p.kindOf[id] = kind
	}
}

func (p *Parser) handleSendPacket(payload [FrameSize - 1]byte) {
	targetID := component.NodeID(payload[0])
	targetPort := component.Port(payload[1])
	kind := payload[2]
	var value [4]byte
	copy(value[:], payload[3:7])

	target, ok := p.net.NodeByID(targetID)
	if !ok {
		p.net.EmitDebug(network.DebugLevelError, network.DebugInvalidNodeID)
		return
	}
	pkt := DecodePacket(kind, value)
	p.net.SendMessage(target, targetPort, pkt, nil, 0)
}

func (p *Parser) handleListComponents() {
	if p.reply == nil {
		return
	}
	for i, kind := range p.registry.Kinds() {
		var nameBytes [6]byte
		copy(nameBytes[:], kind)
		p.reply.WriteFrame(EncodeFrame(byte(RspComponentListed), append([]byte{byte(i)}, nameBytes[:]...)...))
	}
	p.reply.WriteFrame(EncodeFrame(byte(RspListEnd)))
}

func (p *Parser) handleListNodes() {
	if p.reply == nil {
		return
	}
	for _, info := range p.net.Nodes() {
		var kindIndex byte
		if kind, ok := p.kindOf[info.ID]; ok {
			for i, k := range p.registry.Kinds() {
				if k == kind {
					kindIndex = byte(i)
					break
				}
			}
		}
		p.reply.WriteFrame(EncodeFrame(byte(RspNodeListed), byte(info.ID), byte(info.ParentID), kindIndex))
	}
	p.reply.WriteFrame(EncodeFrame(byte(RspListEnd)))
}

func (p *Parser) handleListEdges() {
	if p.reply == nil {
		return
	}
	for _, info := range p.net.Nodes() {
		edges, ok := info.Node.(portEdges)
		if !ok {
			continue
		}
		for port := 0; port < edges.NumPorts(); port++ {
			conn, connected := edges.ConnectionAt(component.Port(port))
			if !connected {
				continue
			}
			p.reply.WriteFrame(EncodeFrame(byte(RspEdgeListed),
				byte(info.ID), byte(port), byte(conn.TargetID), byte(conn.TargetPort)))
		}
	}
	p.reply.WriteFrame(EncodeFrame(byte(RspListEnd)))
}
