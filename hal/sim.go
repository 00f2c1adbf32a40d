package hal

import "sync"

// Clock supplies the current time to SimIO, so tests stay deterministic
// instead of depending on a wall clock.
type Clock func() int64

// SimIO is a dependency-free, in-memory IO implementation used by tests and
// the demo CLI's simulated-hardware mode. Serial writes accumulate in a
// per-device log; digital pins are held in a map of pin to level; analog pins return a
// configured fixed reading; the clock is caller-supplied.
type SimIO struct {
	mu sync.Mutex

	clock Clock

	serialOut map[int][]byte
	serialIn  map[int][]byte

	digital map[int]bool
	modes   map[int]PinMode
	pullups map[int]PullupMode
	analog  map[int]int64
	pwm     map[int]int

	interrupts map[int]simInterrupt

	notImpl NotImplementedHandler
}

type simInterrupt struct {
	mode InterruptMode
	fn   InterruptFunc
	ctx  any
}

// NewSimIO builds a SimIO driven by clock. A nil clock defaults to a clock
// that always reports 0, since this module never reads wall-clock time on
// its own (see design notes on determinism).
func NewSimIO(clock Clock) *SimIO {
	if clock == nil {
		clock = func() int64 { return 0 }
	}
	return &SimIO{
		clock:      clock,
		serialOut:  make(map[int][]byte),
		serialIn:   make(map[int][]byte),
		digital:    make(map[int]bool),
		modes:      make(map[int]PinMode),
		pullups:    make(map[int]PullupMode),
		analog:     make(map[int]int64),
		pwm:        make(map[int]int),
		interrupts: make(map[int]simInterrupt),
	}
}

// SetNotImplementedHandler installs the sink for unsupported-operation
// reports. SimIO supports every operation in the IO interface, so this is
// only exercised by tests that want to assert the reporting path itself.
func (s *SimIO) SetNotImplementedHandler(h NotImplementedHandler) { s.notImpl = h }

func (s *SimIO) SerialBegin(dev int, baud int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.serialOut[dev]; !ok {
		s.serialOut[dev] = nil
	}
}

func (s *SimIO) SerialWrite(dev int, b byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serialOut[dev] = append(s.serialOut[dev], b)
}

// SerialOutput returns a copy of everything written to dev so far, for test
// assertions.
func (s *SimIO) SerialOutput(dev int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.serialOut[dev]))
	copy(out, s.serialOut[dev])
	return out
}

// FeedSerial queues bytes a test wants SerialRead/SerialDataAvailable to
// return for dev, simulating an inbound byte stream.
func (s *SimIO) FeedSerial(dev int, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serialIn[dev] = append(s.serialIn[dev], data...)
}

func (s *SimIO) SerialDataAvailable(dev int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.serialIn[dev]))
}

func (s *SimIO) SerialRead(dev int) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := s.serialIn[dev]
	if len(buf) == 0 {
		return 0
	}
	b := buf[0]
	s.serialIn[dev] = buf[1:]
	return b
}

func (s *SimIO) PinSetMode(pin int, mode PinMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes[pin] = mode
}

func (s *SimIO) PinSetPullup(pin int, mode PullupMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pullups[pin] = mode
}

func (s *SimIO) DigitalWrite(pin int, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.digital[pin] = v
}

func (s *SimIO) DigitalRead(pin int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.digital[pin]
}

// SetAnalog configures the fixed reading AnalogRead(pin) will return,
// simulating a sensor value.
func (s *SimIO) SetAnalog(pin int, v int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analog[pin] = v
}

func (s *SimIO) AnalogRead(pin int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analog[pin]
}

func (s *SimIO) PwmWrite(pin int, dutyPercent int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pwm[pin] = dutyPercent
}

// PwmDuty returns the last duty cycle written to pin, for test assertions.
func (s *SimIO) PwmDuty(pin int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pwm[pin]
}

func (s *SimIO) TimerCurrentMs() int64 {
	return s.clock() / 1000
}

func (s *SimIO) TimerCurrentMicros() int64 {
	return s.clock()
}

func (s *SimIO) AttachExternalInterrupt(interrupt int, mode InterruptMode, fn InterruptFunc, userCtx any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interrupts[interrupt] = simInterrupt{mode: mode, fn: fn, ctx: userCtx}
}

// FireInterrupt invokes the handler attached to interrupt, as a test's
// stand-in for a real edge/level trigger. It is the caller's responsibility
// to respect the same interrupt-safety contract real backends must: never
// call back into a Network from within fn.
func (s *SimIO) FireInterrupt(interrupt int) {
	s.mu.Lock()
	h, ok := s.interrupts[interrupt]
	s.mu.Unlock()
	if ok && h.fn != nil {
		h.fn(h.ctx)
	}
}
