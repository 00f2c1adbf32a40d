// Package hal abstracts the hardware operations a node's process method may
// perform: serial I/O, digital/analog pins, PWM, timers, and external
// interrupts. The concrete backend (a real MCU's GPIO/serial/timer drivers)
// is an injected dependency, out of scope for this module; hal only defines
// the contract and a deterministic in-memory implementation for tests and
// the demo CLI.
package hal

// PinMode selects a GPIO pin's direction.
type PinMode int

const (
	InputPin PinMode = iota
	OutputPin
)

// PullupMode selects a GPIO pin's internal pull resistor.
type PullupMode int

const (
	PullNone PullupMode = iota
	PullUp
)

// InterruptMode selects the edge or level an external interrupt fires on.
type InterruptMode int

const (
	OnLow InterruptMode = iota
	OnHigh
	OnChange
	OnRisingEdge
	OnFallingEdge
)

// InterruptFunc is invoked when an attached external interrupt fires.
// Per the platform's interrupt-safety contract, an InterruptFunc must not
// call back into a Network; it should only record a flag or a timestamp for
// a node to observe on its next process call.
type InterruptFunc func(userCtx any)

// IO is the abstract hardware interface a Network and its nodes are built
// against. Unsupported operations must report IoOperationNotImplemented(name)
// to the installed NotImplementedHandler and return the documented zero
// value; they must never panic.
type IO interface {
	SerialBegin(dev int, baud int)
	SerialDataAvailable(dev int) int64
	SerialRead(dev int) byte
	SerialWrite(dev int, b byte)

	PinSetMode(pin int, mode PinMode)
	PinSetPullup(pin int, mode PullupMode)
	DigitalWrite(pin int, v bool)
	DigitalRead(pin int) bool
	AnalogRead(pin int) int64
	PwmWrite(pin int, dutyPercent int)

	TimerCurrentMs() int64
	TimerCurrentMicros() int64

	AttachExternalInterrupt(interrupt int, mode InterruptMode, fn InterruptFunc, userCtx any)
}

// NotImplementedHandler is notified when a backend is asked to perform an
// operation it does not support, mirroring the debug plane's
// DebugIoOperationNotImplemented event. Backends that support every
// operation may leave this nil.
type NotImplementedHandler interface {
	IoOperationNotImplemented(operation string)
}
