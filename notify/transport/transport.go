// Package transport implements the byte-stream carriers a notification sink
// writes reply frames to and a host protocol parser reads command frames
// from. It is the Go mirror of the original source's HostTransport: a single
// narrow interface, with Null, ReadWriter, and NATS implementations.
package transport

// Transport is the capability notify.Sink and a CLI main loop need: push one
// outgoing byte, and give any buffered incoming bytes a chance to be fed to
// a parser. Mirrors the original source's HostTransport::sendCommandByte.
type Transport interface {
	// SendCommandByte writes one byte of an outgoing reply frame.
	SendCommandByte(b byte) error
	// RunTick gives the transport a chance to do non-blocking I/O work: feed
	// buffered inbound bytes to an installed parser, flush outbound writes.
	// Called once per main-loop iteration, after network.RunTick.
	RunTick()
}

// FrameReader receives command bytes as they become available. hostproto.Parser
// implements this with its Feed method; transports are constructed with one
// so they have somewhere to deliver inbound bytes.
type FrameReader interface {
	Feed(b byte)
}
