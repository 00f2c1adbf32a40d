// Package component provides the node base every concrete component embeds,
// and the Registry that lets the host protocol instantiate component kinds
// by name.
//
// # Overview
//
// A component is a class of node: a pure computation responding to packets
// on its input ports and, optionally, emitting packets on its output ports.
// Concrete components embed Base, which provides fan-out storage and the
// send primitive, and implement Node's single method:
//
//	type Node interface {
//		Process(p packet.Packet, port Port)
//	}
//
// Base never allocates after construction: its fan-out table is sized once,
// from the component's declared port count, at NewBase time.
//
// # Registration Pattern
//
// MicroFlo uses EXPLICIT registration rather than init() self-registration:
// the built-in component kinds live in the componentregistry package, and its
// Register(*Registry) error function registers every one of them. This keeps
// the dependency graph visible and avoids global state changing on import.
//
// Registration flow:
//
//  1. The componentregistry package defines the built-in component kinds
//  2. componentregistry.Register registers all of them with a Registry
//  3. cmd/microflod calls it once, building one Registry
//  4. The host protocol's CreateComponent command looks kinds up by name
//
// # Registry Thread Safety
//
// All Registry operations are safe for concurrent use: factory registration
// and node creation both take the registry's mutex. In the running system
// only the main loop calls into the registry, since host commands are
// parsed and applied synchronously from that same loop (see the network
// package's concurrency model) — the locking exists for tests and for
// embedding applications that build a registry before the loop starts.
package component
