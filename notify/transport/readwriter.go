package transport

import (
	"io"
	"sync"
)

// ReadWriter carries frames over any io.ReadWriter: a real serial port, a
// TCP socket, or an in-memory pipe in tests. Mirrors the original source's
// SerialHostTransport, generalized from a concrete serial port to the
// io.ReadWriter interface.
//
// Reads happen on their own goroutine, draining into a buffered channel —
// RunTick is the only place bytes cross back onto the caller's goroutine,
// matching spec.md §5's rule that only the main loop ever feeds a parser.
type ReadWriter struct {
	rw     io.ReadWriter
	reader FrameReader

	incoming chan byte
	readErr  chan error

	writeMu sync.Mutex
}

// NewReadWriter wraps rw and starts its background read loop. Every byte
// read is eventually delivered to reader.Feed, but only from RunTick.
func NewReadWriter(rw io.ReadWriter, reader FrameReader) *ReadWriter {
	t := &ReadWriter{
		rw:       rw,
		reader:   reader,
		incoming: make(chan byte, 4096),
		readErr:  make(chan error, 1),
	}
	go t.readLoop()
	return t
}

func (t *ReadWriter) readLoop() {
	buf := make([]byte, 256)
	for {
		n, err := t.rw.Read(buf)
		for i := 0; i < n; i++ {
			t.incoming <- buf[i]
		}
		if err != nil {
			t.readErr <- err
			close(t.incoming)
			return
		}
	}
}

// SendCommandByte writes one byte directly to the wrapped writer.
func (t *ReadWriter) SendCommandByte(b byte) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	_, err := t.rw.Write([]byte{b})
	return err
}

// RunTick drains every byte currently buffered from the read loop, feeding
// each to the installed reader, then returns — it never blocks waiting for
// more input.
func (t *ReadWriter) RunTick() {
	for {
		select {
		case b, ok := <-t.incoming:
			if !ok {
				return
			}
			t.reader.Feed(b)
		default:
			return
		}
	}
}

// Err returns the error that ended the read loop, if any, without blocking.
func (t *ReadWriter) Err() error {
	select {
	case err := <-t.readErr:
		t.readErr <- err
		return err
	default:
		return nil
	}
}
