package testutil

import (
	"github.com/flowcore/microflo/component"
	"github.com/flowcore/microflo/componentregistry"
	"github.com/flowcore/microflo/hal"
	"github.com/flowcore/microflo/network"
)

// ToggleSerialGraph is the result of BuildToggleSerialGraph: a running
// network with a ToggleBoolean wired into a SerialOut, plus the ids and I/O
// handle needed to drive and observe it.
type ToggleSerialGraph struct {
	Net        *network.Network
	IO         *hal.SimIO
	ToggleID   component.NodeID
	SerialID   component.NodeID
	SerialPort int
}

// BuildToggleSerialGraph wires a ToggleBoolean's output into a SerialOut's
// only input, the same two-node shape spec.md's S2 scenario describes:
// ToggleBoolean negates an incoming boolean and SerialOut writes the
// resulting byte to a simulated serial device. The network is started
// before this function returns.
func BuildToggleSerialGraph(opts ...network.Option) (*ToggleSerialGraph, error) {
	clock := func() int64 { return 0 }
	io := hal.NewSimIO(clock)
	io.SerialBegin(0, 9600)

	allOpts := append([]network.Option{network.WithIO(io)}, opts...)
	net, err := network.New(allOpts...)
	if err != nil {
		return nil, err
	}

	toggleID := net.AddNode(componentregistry.NewToggleBoolean(false), component.NoParent)
	serialID := net.AddNode(componentregistry.NewSerialOut(0), component.NoParent)
	net.ConnectByID(toggleID, 0, serialID, 0)

	net.Start()

	return &ToggleSerialGraph{
		Net:        net,
		IO:         io,
		ToggleID:   toggleID,
		SerialID:   serialID,
		SerialPort: 0,
	}, nil
}
