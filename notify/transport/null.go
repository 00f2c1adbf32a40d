package transport

// Null discards every outgoing byte and never produces any incoming bytes.
// Mirrors the original source's NullHostTransport — useful for running a
// network with no host attached, or in tests that only care about the
// scheduler's internal state.
type Null struct{}

// NewNull constructs a Null transport.
func NewNull() *Null { return &Null{} }

// SendCommandByte discards b.
func (n *Null) SendCommandByte(b byte) error { return nil }

// RunTick does nothing; Null never has buffered input.
func (n *Null) RunTick() {}
