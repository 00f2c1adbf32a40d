package network

import "github.com/flowcore/microflo/component"

// NotificationHandler mirrors every network event, in addition to the debug
// plane it embeds. Installing one via SetNotificationHandler is how a host
// protocol notification sink observes a running graph.
type NotificationHandler interface {
	DebugHandler

	PacketSent(index int, msg Message, sender component.Node, senderPort component.Port)
	PacketDelivered(index int, msg Message)
	NodeAdded(n component.Node, parentID component.NodeID)
	NodesConnected(srcID component.NodeID, srcPort component.Port, targetID component.NodeID, targetPort component.Port)
	NetworkStateChanged(s State)
	SubgraphConnected(isOutput bool, subgraphNode component.NodeID, subgraphPort component.Port, childNode component.NodeID, childPort component.Port)
	PortSubscriptionChanged(nodeID component.NodeID, portID component.Port, enable bool)
}
