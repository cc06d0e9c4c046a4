// Package models defines the in-memory graph data model: nodes, directed
// typed edges, and the insertion-ordered Graph container they live in.
package models

// NodeType classifies a node for styling and view-mode membership.
type NodeType string

const (
	TypeService      NodeType = "service"
	TypeRoute        NodeType = "route"
	TypeEndpoint     NodeType = "endpoint"
	TypeTopic        NodeType = "topic"
	TypeSubscription NodeType = "subscription"
	TypeSchema       NodeType = "schema"
	TypeTable        NodeType = "table"
	TypeCollection   NodeType = "collection"
	TypeKeyspace     NodeType = "keyspace"
	TypeEntity       NodeType = "entity"
	TypeCache        NodeType = "cache"
	TypeOperation    NodeType = "operation"
	TypeCluster      NodeType = "cluster"
	TypeTenant       NodeType = "tenant"
	TypeNamespace    NodeType = "namespace"
)

// NodeTypes lists every known node type in a stable order.
var NodeTypes = []NodeType{
	TypeService, TypeRoute, TypeEndpoint, TypeCluster, TypeTenant,
	TypeNamespace, TypeTopic, TypeSubscription, TypeSchema, TypeTable,
	TypeCollection, TypeKeyspace, TypeEntity, TypeCache, TypeOperation,
}

var nodeTypeSet = func() map[NodeType]struct{} {
	m := make(map[NodeType]struct{}, len(NodeTypes))
	for _, t := range NodeTypes {
		m[t] = struct{}{}
	}
	return m
}()

// KnownNodeType reports whether t is in the fixed type enumeration.
func KnownNodeType(t NodeType) bool {
	_, ok := nodeTypeSet[t]
	return ok
}

// Node is a graph vertex representing a service or resource. ID is the
// identity key and is immutable once the node is in a graph. Attrs is an
// open metadata bag the model never inspects.
type Node struct {
	ID    string         `json:"id"`
	Label string         `json:"label"`
	Type  NodeType       `json:"type"`
	Env   string         `json:"env,omitempty"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Category returns the component category used by display filters:
// attrs.componentType when present, otherwise the node type.
func (n Node) Category() string {
	if v, ok := n.Attrs["componentType"].(string); ok && v != "" {
		return v
	}
	return string(n.Type)
}
