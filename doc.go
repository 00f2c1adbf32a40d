// Package microflo implements a flow-based-programming runtime for
// microcontrollers: a fixed-size network of components exchanging typed
// packets over bounded, ordered connections, driven by a cooperative
// scheduler and addressable from a host over a framed byte protocol.
//
// # Architecture
//
// MicroFlo runs a single statically-sized graph of components:
//
//	┌─────────────────────────────────────┐
//	│            Network                  │  Scheduler tick loop,
//	│   (nodes, connections, messages)    │  packet delivery, metrics
//	└─────────────────────────────────────┘
//	           ↓ ticks
//	┌─────────────────────────────────────┐
//	│          Components                 │  Node implementations
//	│   (component.Base embedders)        │  (registered by name)
//	└─────────────────────────────────────┘
//	           ↓ read/write
//	┌─────────────────────────────────────┐
//	│             hal.IO                  │  Digital/analog pins,
//	│   (real hardware or hal.SimIO)      │  serial, timers
//	└─────────────────────────────────────┘
//
// The network is reachable from a host process over a framed protocol
// (package hostproto) carried by one of several byte transports (package
// notify/transport): an in-process pipe, an io.ReadWriter such as a serial
// port, or a NATS subject pair for multi-process demos.
//
// # Framework Packages
//
// Core (fixed by the wire protocol and scheduler semantics):
//   - packet: the Packet type and payload encoding
//   - component: Node/Port/Connection, the Base embedding helper
//   - subgraph: composite nodes built from a subgraph of other nodes
//   - network: the scheduler, message ring, and notification dispatch
//   - hostproto: the 8-byte framed command/response protocol
//   - notify: the notification sink and its transports
//
// Ambient infrastructure (carried the way the rest of this stack does it):
//   - config: typed, validated runtime configuration with safe concurrent access
//   - metric: Prometheus instrumentation of the scheduler
//   - errors: classified error wrapping (transient/invalid/fatal)
//   - natsclient: NATS connection management for the NATS transport
//
// Supporting packages:
//   - hal: the IO contract plus a deterministic in-memory simulator
//   - componentregistry: named component factories for the host's CreateComponent command
//   - pkg/buffer: the generic circular buffer backing the bounded message ring
//   - pkg/retry: classified error retry policy, used by errors
//   - cmd/microflod: the CLI entry point wiring network, transport, and registry together
//
// # Usage
//
// Building and running a network:
//
//	registry := component.NewRegistry()
//	componentregistry.Register(registry)
//
//	net, _ := network.New(network.WithCapacities(cfg.MaxNodes, cfg.MaxMessages))
//	toggle := net.AddNode(componentregistry.NewToggleBoolean(false), component.NoParent)
//	out := net.AddNode(componentregistry.NewSerialOut(0), component.NoParent)
//	net.ConnectByID(toggle, 0, out, 0)
//	net.Start()
//
//	for range time.Tick(tickInterval) {
//		net.RunTick()
//	}
//
// Driving the network from a host over a transport:
//
//	parser := hostproto.NewParser(net, registry)
//	tr := transport.NewReadWriter(conn, parser)
//
//	sink := notify.NewSink(tr)
//	net.SetNotificationHandler(sink)
//	parser.SetReplyWriter(sink)
//
// # Design Principles
//
// Fixed capacity over dynamic allocation: node tables, port tables, and the
// message ring are all sized up front from config, matching the
// microcontroller target this runtime is designed for.
//
// Transport independence: the network never talks to a byte stream
// directly. hal.IO and notify/transport both go through narrow interfaces
// so the same graph runs against simulated hardware in tests and real
// hardware or a NATS link in deployment.
//
// Deterministic simulation: hal.SimIO takes its clock from an injected
// function rather than time.Now, so scheduler and component tests are
// reproducible.
package microflo
