package models

import (
	"encoding/json"

	appErr "github.com/nexusnova/atlas/pkg/errors"
)

// Graph is an insertion-ordered collection of nodes and edges with O(1)
// lookup by id. The type itself does not enforce edge-endpoint existence;
// that invariant is held at the mutation boundary (the edit session).
type Graph struct {
	nodes   []Node
	edges   []Edge
	nodeIdx map[string]int
	edgeIdx map[string]int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodeIdx: map[string]int{},
		edgeIdx: map[string]int{},
	}
}

// FromParts builds a graph from raw node and edge lists. The only
// validation is node-id uniqueness; duplicate ids fail with
// duplicate_node_id. Edges with colliding ids follow last-write-wins.
func FromParts(nodes []Node, edges []Edge) (*Graph, error) {
	g := NewGraph()
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, e := range edges {
		g.PutEdge(e)
	}
	return g, nil
}

// Nodes returns the node sequence in insertion order. Callers must not
// mutate the returned slice.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the edge sequence in insertion order. Callers must not
// mutate the returned slice.
func (g *Graph) Edges() []Edge { return g.edges }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node looks up a node by id.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.nodeIdx[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Edge looks up an edge by id.
func (g *Graph) Edge(id string) (Edge, bool) {
	i, ok := g.edgeIdx[id]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

// HasNode reports whether a node with the given id exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodeIdx[id]
	return ok
}

// AddNode appends a node, failing with duplicate_node_id when the id is
// already present.
func (g *Graph) AddNode(n Node) error {
	if _, ok := g.nodeIdx[n.ID]; ok {
		return appErr.Newf(appErr.CodeDuplicateNodeID, "node id already exists: %s", n.ID)
	}
	g.nodeIdx[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return nil
}

// PutEdge appends an edge, or replaces the existing edge in place when one
// with the same id is already present (last-write-wins, order preserved).
func (g *Graph) PutEdge(e Edge) {
	if i, ok := g.edgeIdx[e.ID]; ok {
		g.edges[i] = e
		return
	}
	g.edgeIdx[e.ID] = len(g.edges)
	g.edges = append(g.edges, e)
}

// RemoveNode removes the node and every edge incident to it. Removing an
// absent id is a no-op; the return value reports whether anything changed.
func (g *Graph) RemoveNode(id string) bool {
	if _, ok := g.nodeIdx[id]; !ok {
		return false
	}
	kept := g.nodes[:0]
	for _, n := range g.nodes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	g.nodes = kept

	keptEdges := g.edges[:0]
	for _, e := range g.edges {
		if e.Src != id && e.Dst != id {
			keptEdges = append(keptEdges, e)
		}
	}
	g.edges = keptEdges
	g.reindex()
	return true
}

// RemoveEdge removes the edge with the given id; absent ids are a no-op.
func (g *Graph) RemoveEdge(id string) bool {
	i, ok := g.edgeIdx[id]
	if !ok {
		return false
	}
	g.edges = append(g.edges[:i], g.edges[i+1:]...)
	g.reindex()
	return true
}

func (g *Graph) reindex() {
	g.nodeIdx = make(map[string]int, len(g.nodes))
	for i, n := range g.nodes {
		g.nodeIdx[n.ID] = i
	}
	g.edgeIdx = make(map[string]int, len(g.edges))
	for i, e := range g.edges {
		g.edgeIdx[e.ID] = i
	}
}

// Clone returns a deep copy, including every attrs tree.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes:   make([]Node, len(g.nodes)),
		edges:   make([]Edge, len(g.edges)),
		nodeIdx: make(map[string]int, len(g.nodeIdx)),
		edgeIdx: make(map[string]int, len(g.edgeIdx)),
	}
	for i, n := range g.nodes {
		n.Attrs = cloneAttrs(n.Attrs)
		c.nodes[i] = n
		c.nodeIdx[n.ID] = i
	}
	for i, e := range g.edges {
		e.Attrs = cloneAttrs(e.Attrs)
		c.edges[i] = e
		c.edgeIdx[e.ID] = i
	}
	return c
}

func cloneAttrs(attrs map[string]any) map[string]any {
	if attrs == nil {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneAttrs(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// graphJSON is the transferable shape: exactly nodes and edges, no wrapper.
type graphJSON struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// MarshalJSON serializes the graph as {"nodes":[...],"edges":[...]},
// preserving insertion order.
func (g *Graph) MarshalJSON() ([]byte, error) {
	doc := graphJSON{Nodes: g.nodes, Edges: g.edges}
	if doc.Nodes == nil {
		doc.Nodes = []Node{}
	}
	if doc.Edges == nil {
		doc.Edges = []Edge{}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON accepts the shape produced by MarshalJSON. Node-id
// uniqueness is the only structural validation applied here.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var doc graphJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	parsed, err := FromParts(doc.Nodes, doc.Edges)
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}

// Equal reports structural equality: same nodes and edges, same order.
func (g *Graph) Equal(other *Graph) bool {
	if g.NodeCount() != other.NodeCount() || g.EdgeCount() != other.EdgeCount() {
		return false
	}
	a, _ := json.Marshal(g)
	b, _ := json.Marshal(other)
	return string(a) == string(b)
}
