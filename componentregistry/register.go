// Package componentregistry provides the named component-kind factories the
// host protocol's CreateComponent command instantiates from, and that a
// demo graph can be built out of directly in Go.
package componentregistry

import (
	"errors"

	"github.com/flowcore/microflo/component"
	pkgerrors "github.com/flowcore/microflo/errors"
)

// Register adds every component kind this module ships to registry:
// ToggleBoolean, SerialOut, Repeat, and DummyComponent.
func Register(registry *component.Registry) error {
	// CRITICAL: Nil registry is a programming error (fatal), not invalid input
	if registry == nil {
		return pkgerrors.WrapFatal(
			errors.New("registry cannot be nil"),
			"ComponentRegistry", "Register", "registry validation")
	}

	if err := registry.RegisterFactory("ToggleBoolean", &component.Registration{
		Kind:        "ToggleBoolean",
		Description: "negates every boolean packet it receives",
		Factory: func(id component.NodeID) (component.Node, error) {
			return NewToggleBoolean(false), nil
		},
	}); err != nil {
		return pkgerrors.WrapInvalid(err, "ComponentRegistry", "Register", "ToggleBoolean registration")
	}

	if err := registry.RegisterFactory("SerialOut", &component.Registration{
		Kind:        "SerialOut",
		Description: "writes every data packet's byte payload to a serial device",
		Factory: func(id component.NodeID) (component.Node, error) {
			return NewSerialOut(0), nil
		},
	}); err != nil {
		return pkgerrors.WrapInvalid(err, "ComponentRegistry", "Register", "SerialOut registration")
	}

	if err := registry.RegisterFactory("Repeat", &component.Registration{
		Kind:        "Repeat",
		Description: "forwards every data packet unchanged",
		Factory: func(id component.NodeID) (component.Node, error) {
			return NewRepeat(), nil
		},
	}); err != nil {
		return pkgerrors.WrapInvalid(err, "ComponentRegistry", "Register", "Repeat registration")
	}

	if err := registry.RegisterFactory("DummyComponent", &component.Registration{
		Kind:        "DummyComponent",
		Description: "accepts anything, emits nothing",
		Factory: func(id component.NodeID) (component.Node, error) {
			return NewDummyComponent(), nil
		},
	}); err != nil {
		return pkgerrors.WrapInvalid(err, "ComponentRegistry", "Register", "DummyComponent registration")
	}

	return nil
}
