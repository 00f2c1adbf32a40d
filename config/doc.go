// Package config loads and validates the runtime-tunable limits of a
// microflo network: node table and message ring capacities, port width,
// debug verbosity, and which byte transport carries the host protocol.
//
// # Basic usage
//
//	cfg, err := config.Load("microflo.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	safe := config.NewSafeConfig(cfg)
//
// Load reads a JSON file (if path is non-empty) layered under Default(),
// then applies MICROFLO_* environment variable overrides:
//
//	export MICROFLO_MAX_NODES=100
//	export MICROFLO_TRANSPORT=nats
//
// SafeConfig wraps a Config for concurrent read/update, validating on every
// Update and handing out a clone from Get so callers can't mutate shared
// state.
//
// Unlike the platform-wide configuration this package was adapted from,
// there is no persisted or KV-synced state here: spec.md has no durable
// configuration store, so Manager's NATS KV watch loop was dropped rather
// than carried forward unused.
package config
