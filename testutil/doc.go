// Package testutil provides shared test helpers for building and observing
// networks across this module's package tests: a recording notification
// handler and small graph-building helpers, so individual _test.go files
// don't each reinvent the same fixtures.
//
// # Recording events
//
// RecordingHandler implements network.NotificationHandler, appending every
// event it receives to an ordered, lockable slice a test can assert against:
//
//	h := testutil.NewRecordingHandler()
//	net.SetNotificationHandler(h)
//	...
//	assert.Equal(t, []string{"nodeAdded", "networkStateChanged:running"}, h.Names())
//
// # Building a demo graph
//
// BuildToggleSerialGraph wires a ToggleBoolean into a SerialOut through a
// hal.SimIO, the same shape spec.md's S2 scenario describes, so multiple
// packages' tests can build it identically instead of hand-rolling the
// wiring each time.
//
// # Design note
//
// Earlier revisions of this package carried a MockNATSClient. It has been
// dropped rather than adapted: natsclient's own doc.go already establishes
// testcontainers over mocks as this module's NATS testing idiom, and a
// second, competing in-memory NATS fake here would just invite tests to pick
// whichever is more convenient instead of the one the project has standardized on.
package testutil
