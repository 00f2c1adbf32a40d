package transport

import (
	"context"

	"github.com/flowcore/microflo/hostproto"
	"github.com/flowcore/microflo/natsclient"
)

// NATS carries frames over a pair of NATS subjects instead of a direct byte
// stream: outgoing bytes are batched into whole 8-byte frames and published,
// incoming messages are unpacked back into individual bytes for Feed. This
// is not something spec.md's host protocol itself describes — it exists
// because the teacher's own primary transport for everything is NATS
// pub/sub, and the examples give no other believable multi-process carrier
// for this wire format.
type NATS struct {
	client     *natsclient.Client
	outSubject string
	reader     FrameReader

	outBuf   []byte
	incoming chan byte
}

// NewNATS subscribes to inSubject and returns a transport that publishes
// assembled frames to outSubject. client must already be connected.
func NewNATS(client *natsclient.Client, outSubject, inSubject string, reader FrameReader) (*NATS, error) {
	t := &NATS{
		client:     client,
		outSubject: outSubject,
		reader:     reader,
		incoming:   make(chan byte, 4096),
	}
	err := client.Subscribe(context.Background(), inSubject, func(_ context.Context, data []byte) {
		for _, b := range data {
			t.incoming <- b
		}
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// SendCommandByte buffers b and publishes once a full frame has accumulated.
func (t *NATS) SendCommandByte(b byte) error {
	t.outBuf = append(t.outBuf, b)
	if len(t.outBuf) < hostproto.FrameSize {
		return nil
	}
	frame := make([]byte, len(t.outBuf))
	copy(frame, t.outBuf)
	t.outBuf = t.outBuf[:0]
	return t.client.Publish(context.Background(), t.outSubject, frame)
}

// RunTick drains every byte received from the subscription so far.
func (t *NATS) RunTick() {
	for {
		select {
		case b := <-t.incoming:
			t.reader.Feed(b)
		default:
			return
		}
	}
}
