package transport

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNull_DiscardsBytes(t *testing.T) {
	n := NewNull()
	assert.NoError(t, n.SendCommandByte(0xAB))
	assert.NotPanics(t, n.RunTick)
}

type recordingReader struct {
	fed []byte
}

func (r *recordingReader) Feed(b byte) { r.fed = append(r.fed, b) }

func TestReadWriter_FeedsBytesOnlyOnRunTick(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	reader := &recordingReader{}
	rw := NewReadWriter(client, reader)

	done := make(chan struct{})
	go func() {
		_, _ = server.Write([]byte{1, 2, 3})
		close(done)
	}()
	<-done

	// Give the background read loop a moment to pull the bytes off the pipe.
	deadline := time.After(time.Second)
	for len(rw.incoming) < 3 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for bytes to be read")
		case <-time.After(time.Millisecond):
		}
	}

	assert.Empty(t, reader.fed, "bytes must not reach the reader before RunTick")
	rw.RunTick()
	assert.Equal(t, []byte{1, 2, 3}, reader.fed)
}

func TestReadWriter_SendCommandByteWrites(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	rw := NewReadWriter(client, &recordingReader{})

	readDone := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 1)
		n, _ := server.Read(buf)
		readDone <- buf[:n]
	}()

	require.NoError(t, rw.SendCommandByte(0x42))
	got := <-readDone
	assert.Equal(t, []byte{0x42}, got)
}
