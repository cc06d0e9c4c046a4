package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/nexusnova/atlas/pkg/errors"
)

func twoServiceGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := FromParts(
		[]Node{
			{ID: "svc:A", Label: "A", Type: TypeService},
			{ID: "svc:B", Label: "B", Type: TypeService},
		},
		[]Edge{
			{ID: EdgeID("svc:A", "svc:B", VerbCalls), Src: "svc:A", Dst: "svc:B", Verb: VerbCalls},
		},
	)
	require.NoError(t, err)
	return g
}

func TestAddNodeDuplicate(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddNode(Node{ID: "x", Type: TypeService}))
	err := g.AddNode(Node{ID: "x", Type: TypeTopic})
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeDuplicateNodeID))
	require.Equal(t, 1, g.NodeCount())
}

func TestRemoveNodeCascades(t *testing.T) {
	g := twoServiceGraph(t)
	require.True(t, g.RemoveNode("svc:B"))

	require.Equal(t, 1, g.NodeCount())
	require.Equal(t, 0, g.EdgeCount())
	_, ok := g.Node("svc:A")
	require.True(t, ok)
	for _, e := range g.Edges() {
		require.NotEqual(t, "svc:B", e.Src)
		require.NotEqual(t, "svc:B", e.Dst)
	}
}

func TestRemoveNodeAbsentIsNoop(t *testing.T) {
	g := twoServiceGraph(t)
	require.False(t, g.RemoveNode("svc:C"))
	require.Equal(t, 2, g.NodeCount())
	require.Equal(t, 1, g.EdgeCount())
}

func TestPutEdgeReplacesInPlace(t *testing.T) {
	g := twoServiceGraph(t)
	id := EdgeID("svc:A", "svc:B", VerbCalls)
	g.PutEdge(Edge{ID: id, Src: "svc:A", Dst: "svc:B", Verb: VerbCalls, Attrs: map[string]any{"rps": 5}})

	require.Equal(t, 1, g.EdgeCount())
	e, ok := g.Edge(id)
	require.True(t, ok)
	require.Equal(t, 5, e.Attrs["rps"])
}

func TestCloneIsDeep(t *testing.T) {
	g := twoServiceGraph(t)
	n, _ := g.Node("svc:A")
	n.Attrs = map[string]any{"service": map[string]any{"language": "java"}}
	g.RemoveNode("svc:A")
	require.NoError(t, g.AddNode(n))

	c := g.Clone()
	cn, _ := c.Node("svc:A")
	cn.Attrs["service"].(map[string]any)["language"] = "go"

	orig, _ := g.Node("svc:A")
	require.Equal(t, "java", orig.Attrs["service"].(map[string]any)["language"])
}

func TestJSONRoundTrip(t *testing.T) {
	g := twoServiceGraph(t)
	raw, err := json.Marshal(g)
	require.NoError(t, err)

	var back Graph
	require.NoError(t, json.Unmarshal(raw, &back))
	require.True(t, g.Equal(&back))

	// Order must be preserved through the round trip.
	require.Equal(t, "svc:A", back.Nodes()[0].ID)
	require.Equal(t, "svc:B", back.Nodes()[1].ID)
}

func TestMarshalEmptyGraph(t *testing.T) {
	raw, err := json.Marshal(NewGraph())
	require.NoError(t, err)
	require.JSONEq(t, `{"nodes":[],"edges":[]}`, string(raw))
}

func TestUnmarshalRejectsDuplicateIDs(t *testing.T) {
	var g Graph
	err := json.Unmarshal([]byte(`{"nodes":[{"id":"a","type":"service"},{"id":"a","type":"service"}],"edges":[]}`), &g)
	require.Error(t, err)
}

func TestNodeCategory(t *testing.T) {
	n := Node{ID: "x", Type: TypeService, Attrs: map[string]any{"componentType": "kestrel"}}
	require.Equal(t, "kestrel", n.Category())

	n = Node{ID: "y", Type: TypeTopic}
	require.Equal(t, "topic", n.Category())
}
