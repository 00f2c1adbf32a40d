// Package network implements the core scheduler: the node table, the bounded
// message mailbox, the per-tick delivery algorithm, and the notification
// fan-out that a host protocol observes.
package network

import (
	"sync"

	"github.com/flowcore/microflo/component"
	"github.com/flowcore/microflo/hal"
	"github.com/flowcore/microflo/metric"
	"github.com/flowcore/microflo/packet"
	"github.com/flowcore/microflo/pkg/buffer"
)

// DefaultMaxNodes and DefaultMaxMessages are the compile-time-tunable
// capacities the original source hardcodes as MICROFLO_MAX_NODES and
// MICROFLO_MAX_MESSAGES.
const (
	DefaultMaxNodes    = 50
	DefaultMaxMessages = 50
	MaxPorts           = 255
	FrameSize          = 8
)

// Message is a pending delivery record: target node, target port, packet.
type Message struct {
	Target     component.Node
	TargetID   component.NodeID
	TargetPort component.Port
	Packet     packet.Packet
}

// connectionSource is satisfied by any node built on component.Base (every
// concrete component in this module is). Network uses it to toggle
// subscriptions and to check them when deciding whether to emit PacketSent.
type connectionSource interface {
	ConnectionAt(port component.Port) (component.Connection, bool)
	Subscribe(port component.Port, enable bool) bool
}

// binder is satisfied by any node built on component.Base; Network calls
// Bind exactly once, at registration, to hand over identity and the IO
// handle — mirroring Component::setNetwork in the original source.
type binder interface {
	Bind(net component.Sender, id component.NodeID, parentID component.NodeID, io hal.IO)
}

type nodeEntry struct {
	node     component.Node
	parentID component.NodeID
}

// Network holds the fixed-capacity node table, the bounded message ring, the
// running state, debug level, and notification handler — and implements
// component.Sender so components can reach it through Base.Send.
type Network struct {
	mu sync.Mutex

	io      hal.IO
	handler NotificationHandler
	metrics *metric.NetworkMetrics

	maxNodes int
	nodes    []nodeEntry // index 0 unused; node ids are 1-based

	ring       buffer.Buffer[Message]
	maxMessage int

	state      State
	debugLevel DebugLevel
}

// Option configures a Network at construction time.
type Option func(*networkOptions)

type networkOptions struct {
	maxNodes    int
	maxMessages int
	io          hal.IO
	metrics     *metric.NetworkMetrics
}

// WithCapacities overrides the default node-table and message-ring sizes.
func WithCapacities(maxNodes, maxMessages int) Option {
	return func(o *networkOptions) {
		o.maxNodes = maxNodes
		o.maxMessages = maxMessages
	}
}

// WithIO installs the hardware interface bound into every registered node.
func WithIO(io hal.IO) Option {
	return func(o *networkOptions) { o.io = io }
}

// WithMetrics installs Prometheus instrumentation for the scheduler.
func WithMetrics(m *metric.NetworkMetrics) Option {
	return func(o *networkOptions) { o.metrics = m }
}

// New constructs a Network in the Stopped state with empty tables.
func New(opts ...Option) (*Network, error) {
	o := &networkOptions{maxNodes: DefaultMaxNodes, maxMessages: DefaultMaxMessages}
	for _, opt := range opts {
		opt(o)
	}

	var bufOpts []buffer.Option[Message]
	bufOpts = append(bufOpts, buffer.WithOverflowPolicy[Message](buffer.DropNewest))

	n := &Network{
		io:         o.io,
		metrics:    o.metrics,
		maxNodes:   o.maxNodes,
		maxMessage: o.maxMessages,
		nodes:      make([]nodeEntry, o.maxNodes+1),
		state:      Stopped,
		debugLevel: DebugLevelError,
	}
	bufOpts = append(bufOpts, buffer.WithDropCallback[Message](func(Message) {
		n.mu.Lock()
		n.emitDebugLocked(DebugLevelError, DebugMessageQueueFull)
		n.mu.Unlock()
	}))

	ring, err := buffer.NewCircularBuffer[Message](o.maxMessages, bufOpts...)
	if err != nil {
		return nil, err
	}
	n.ring = ring
	return n, nil
}

// SetNotificationHandler installs the sink; subsequent events, including
// debug events, are mirrored to it.
func (n *Network) SetNotificationHandler(h NotificationHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handler = h
}

// SetDebugLevel changes the debug plane's verbosity threshold.
func (n *Network) SetDebugLevel(level DebugLevel) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.debugLevel = level
	if n.handler != nil {
		n.handler.DebugChanged(level)
	}
}

// EmitDebug reports a debug event through the installed handler, subject to
// the configured debug level. Exported so callers outside this package (the
// host protocol dispatcher) can report conditions it detects — an unknown
// node id in a SendPacket command, for instance — through the same debug
// plane the scheduler itself uses.
func (n *Network) EmitDebug(level DebugLevel, id DebugID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emitDebugLocked(level, id)
}

func (n *Network) emitDebugLocked(level DebugLevel, id DebugID) {
	if n.handler == nil || level > n.debugLevel {
		return
	}
	n.handler.EmitDebug(level, id)
}

// Reset clears the node table, clears the message ring, and transitions to
// Stopped. A subsequent AddNode returns id 1.
func (n *Network) Reset() {
	n.mu.Lock()
	changed := n.state != Stopped
	n.nodes = make([]nodeEntry, n.maxNodes+1)
	n.ring.Clear()
	n.state = Stopped
	handler := n.handler
	n.mu.Unlock()

	if changed && handler != nil {
		handler.NetworkStateChanged(Stopped)
	}
}

// AddNode assigns the next 1-based node id, binds (network, id, io) into the
// node, and stores it. Returns 0 when the table is full.
func (n *Network) AddNode(node component.Node, parentID component.NodeID) component.NodeID {
	n.mu.Lock()

	var id component.NodeID
	for candidate := 1; candidate <= n.maxNodes; candidate++ {
		if n.nodes[candidate].node == nil {
			id = component.NodeID(candidate)
			break
		}
	}
	if id == 0 {
		n.emitDebugLocked(DebugLevelError, DebugNodeTableFull)
		n.mu.Unlock()
		return 0
	}

	if b, ok := node.(binder); ok {
		b.Bind(n, id, parentID, n.io)
	}
	n.nodes[id] = nodeEntry{node: node, parentID: parentID}
	handler := n.handler
	n.mu.Unlock()

	if handler != nil {
		handler.NodeAdded(node, parentID)
	}
	if n.metrics != nil {
		n.metrics.SetNodeCount(n.NodeCount())
	}
	return id
}

// NodeInfo is a snapshot of one occupied node-table slot, used by the host
// protocol's list-nodes reply.
type NodeInfo struct {
	ID       component.NodeID
	ParentID component.NodeID
	Node     component.Node
}

// Nodes returns a snapshot of every occupied node-table slot, ordered by id.
func (n *Network) Nodes() []NodeInfo {
	n.mu.Lock()
	defer n.mu.Unlock()
	infos := make([]NodeInfo, 0, n.maxNodes)
	for id, e := range n.nodes {
		if e.node != nil {
			infos = append(infos, NodeInfo{ID: component.NodeID(id), ParentID: e.parentID, Node: e.node})
		}
	}
	return infos
}

// NodeCount returns the number of occupied node-table slots.
func (n *Network) NodeCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, e := range n.nodes {
		if e.node != nil {
			count++
		}
	}
	return count
}

// NodeByID returns the node registered at id, if any.
func (n *Network) NodeByID(id component.NodeID) (component.Node, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if int(id) <= 0 || int(id) >= len(n.nodes) || n.nodes[id].node == nil {
		return nil, false
	}
	return n.nodes[id].node, true
}

// Connect records the edge in src's output table by node identity.
func (n *Network) Connect(src component.Node, srcPort component.Port, target component.Node, targetID component.NodeID, targetPort component.Port) {
	type connector interface {
		Connect(outPort component.Port, target component.Node, targetID component.NodeID, targetPort component.Port)
	}
	c, ok := src.(connector)
	if !ok {
		return
	}
	c.Connect(srcPort, target, targetID, targetPort)

	n.mu.Lock()
	handler := n.handler
	srcID := n.idOfLocked(src)
	n.mu.Unlock()

	if handler != nil {
		handler.NodesConnected(srcID, srcPort, targetID, targetPort)
	}
}

// ConnectByID connects by node id instead of by handle, resolving both ends
// through the node table. An unknown id emits a DebugInvalidNodeID debug
// event and no connection is made.
func (n *Network) ConnectByID(srcID component.NodeID, srcPort component.Port, targetID component.NodeID, targetPort component.Port) {
	src, ok := n.NodeByID(srcID)
	if !ok {
		n.mu.Lock()
		n.emitDebugLocked(DebugLevelError, DebugInvalidNodeID)
		n.mu.Unlock()
		return
	}
	target, ok := n.NodeByID(targetID)
	if !ok {
		n.mu.Lock()
		n.emitDebugLocked(DebugLevelError, DebugInvalidNodeID)
		n.mu.Unlock()
		return
	}
	n.Connect(src, srcPort, target, targetID, targetPort)
}

func (n *Network) idOfLocked(node component.Node) component.NodeID {
	for id, e := range n.nodes {
		if e.node == node {
			return component.NodeID(id)
		}
	}
	return 0
}

// ConnectSubgraph wires a subgraph boundary port to a child node/port.
// isOutput selects the direction-specific hook on subgraphNode.
func (n *Network) ConnectSubgraph(isOutput bool, subgraphNode component.NodeID, subgraphPort component.Port, childNode component.NodeID, childPort component.Port) {
	sgAny, ok := n.NodeByID(subgraphNode)
	if !ok {
		n.mu.Lock()
		n.emitDebugLocked(DebugLevelError, DebugInvalidNodeID)
		n.mu.Unlock()
		return
	}
	child, ok := n.NodeByID(childNode)
	if !ok {
		n.mu.Lock()
		n.emitDebugLocked(DebugLevelError, DebugInvalidNodeID)
		n.mu.Unlock()
		return
	}

	type inportWirer interface {
		ConnectInport(inPort component.Port, child component.Node, childPort component.Port)
	}
	type outportWirer interface {
		ConnectOutport(outPort component.Port, child *component.Base, childOutPort component.Port)
	}

	if isOutput {
		sg, ok := sgAny.(outportWirer)
		childBase, hasBase := childBaseOf(child)
		if !ok || !hasBase {
			return
		}
		sg.ConnectOutport(subgraphPort, childBase, childPort)
	} else {
		sg, ok := sgAny.(inportWirer)
		if !ok {
			return
		}
		sg.ConnectInport(subgraphPort, child, childPort)
	}

	n.mu.Lock()
	handler := n.handler
	n.mu.Unlock()
	if handler != nil {
		handler.SubgraphConnected(isOutput, subgraphNode, subgraphPort, childNode, childPort)
	}
}

// childBaseOf extracts a node's *component.Base via the Unwrap method every
// concrete component promotes by embedding component.Base.
func childBaseOf(node component.Node) (*component.Base, bool) {
	if wrapped, ok := node.(interface{ Unwrap() *component.Base }); ok {
		return wrapped.Unwrap(), true
	}
	return nil, false
}

// SubscribeToPort toggles the subscribed flag on (nodeId, portId). Emits
// PortSubscriptionChanged.
func (n *Network) SubscribeToPort(nodeID component.NodeID, portID component.Port, enable bool) {
	node, ok := n.NodeByID(nodeID)
	if !ok {
		return
	}
	cs, ok := node.(connectionSource)
	if !ok || !cs.Subscribe(portID, enable) {
		return
	}

	n.mu.Lock()
	handler := n.handler
	n.mu.Unlock()
	if handler != nil {
		handler.PortSubscriptionChanged(nodeID, portID, enable)
	}
}

// SendMessage enqueues a message for delivery in a future tick. When the
// ring is full, the new message is dropped (DropNewest) and a debug event
// fires. sender/senderPort are informational, used only for subscription
// tracing — when the edge they name is subscribed, a PacketSent
// notification is emitted regardless of whether the enqueue itself
// succeeded, since the edge fired either way.
func (n *Network) SendMessage(target component.Node, targetPort component.Port, p packet.Packet, sender component.Node, senderPort component.Port) {
	n.mu.Lock()
	if n.state != Running {
		n.mu.Unlock()
		return
	}
	targetID := n.idOfLocked(target)
	n.mu.Unlock()

	msg := Message{Target: target, TargetID: targetID, TargetPort: targetPort, Packet: p}
	_ = n.ring.Write(msg)

	if n.metrics != nil {
		n.metrics.SetQueueDepth(n.ring.Size())
	}

	n.mu.Lock()
	handler := n.handler
	n.mu.Unlock()
	if handler == nil || sender == nil {
		return
	}
	if cs, ok := sender.(connectionSource); ok {
		if c, connected := cs.ConnectionAt(senderPort); connected && c.Subscribed {
			handler.PacketSent(n.ring.Size(), msg, sender, senderPort)
		}
	}
}

// Start transitions Stopped -> Running, then delivers a synthetic Setup
// packet to every registered node directly (not through the ring).
func (n *Network) Start() {
	n.mu.Lock()
	if n.state != Stopped {
		n.mu.Unlock()
		return
	}
	n.state = Running
	handler := n.handler
	nodes := n.snapshotNodesLocked()
	n.mu.Unlock()

	if handler != nil {
		handler.NetworkStateChanged(Running)
	}
	for _, node := range nodes {
		node.Process(packet.Setup(), 0)
	}
}

// Stop transitions Running -> Stopped without clearing tables (unlike
// Reset). No further packets are processed until Start runs again.
func (n *Network) Stop() {
	n.mu.Lock()
	if n.state != Running {
		n.mu.Unlock()
		return
	}
	n.state = Stopped
	handler := n.handler
	n.mu.Unlock()

	if handler != nil {
		handler.NetworkStateChanged(Stopped)
	}
}

// State reports the current running state.
func (n *Network) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

func (n *Network) snapshotNodesLocked() []component.Node {
	nodes := make([]component.Node, 0, n.maxNodes)
	for _, e := range n.nodes[1:] {
		if e.node != nil {
			nodes = append(nodes, e.node)
		}
	}
	return nodes
}

// RunTick drains exactly the messages present at tick start — the
// batch-snapshot scheduling algorithm — then delivers a synthetic Tick
// packet to every node. Messages a node's own Process enqueues during this
// tick land after the snapshot boundary and are deferred to the next tick.
func (n *Network) RunTick() {
	n.mu.Lock()
	if n.state != Running {
		n.mu.Unlock()
		return
	}
	handler := n.handler
	n.mu.Unlock()

	batchSize := n.ring.Size()
	for i := 0; i < batchSize; i++ {
		msg, ok := n.ring.Read()
		if !ok {
			break
		}
		if msg.Target != nil {
			msg.Target.Process(msg.Packet, msg.TargetPort)
		}
		if handler != nil {
			handler.PacketDelivered(i, msg)
		}
	}

	if n.metrics != nil {
		n.metrics.IncTicks()
		n.metrics.AddDelivered(batchSize)
		n.metrics.SetQueueDepth(n.ring.Size())
	}

	n.mu.Lock()
	nodes := n.snapshotNodesLocked()
	n.mu.Unlock()
	for _, node := range nodes {
		node.Process(packet.Tick(), 0)
	}
}
