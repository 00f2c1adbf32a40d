package testutil

import (
	"sync"

	"github.com/flowcore/microflo/component"
	"github.com/flowcore/microflo/network"
)

// RecordingHandler implements network.NotificationHandler, appending every
// event it receives to an ordered, lockable log. Tests assert against Names()
// for occurrence and ordering without caring about the event payloads.
type RecordingHandler struct {
	mu     sync.Mutex
	events []string
}

// NewRecordingHandler returns an empty RecordingHandler.
func NewRecordingHandler() *RecordingHandler {
	return &RecordingHandler{}
}

// Names returns a copy of the recorded event names in order.
func (r *RecordingHandler) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// Reset clears the recorded events.
func (r *RecordingHandler) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func (r *RecordingHandler) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, name)
}

func (r *RecordingHandler) EmitDebug(level network.DebugLevel, id network.DebugID) {
	r.record("debug:" + id.String())
}

func (r *RecordingHandler) DebugChanged(level network.DebugLevel) {
	r.record("debugLevelChanged")
}

func (r *RecordingHandler) PacketSent(index int, msg network.Message, sender component.Node, senderPort component.Port) {
	r.record("packetSent")
}

func (r *RecordingHandler) PacketDelivered(index int, msg network.Message) {
	r.record("packetDelivered")
}

func (r *RecordingHandler) NodeAdded(n component.Node, parentID component.NodeID) {
	r.record("nodeAdded")
}

func (r *RecordingHandler) NodesConnected(srcID component.NodeID, srcPort component.Port, targetID component.NodeID, targetPort component.Port) {
	r.record("nodesConnected")
}

func (r *RecordingHandler) NetworkStateChanged(s network.State) {
	r.record("networkStateChanged:" + s.String())
}

func (r *RecordingHandler) SubgraphConnected(isOutput bool, subgraphNode component.NodeID, subgraphPort component.Port, childNode component.NodeID, childPort component.Port) {
	r.record("subgraphConnected")
}

func (r *RecordingHandler) PortSubscriptionChanged(nodeID component.NodeID, portID component.Port, enable bool) {
	r.record("portSubscriptionChanged")
}

var _ network.NotificationHandler = (*RecordingHandler)(nil)
