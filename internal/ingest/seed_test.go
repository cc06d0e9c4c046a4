package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexusnova/atlas/internal/models"
)

const seedFixture = `{
	"nodes": [
		{"id": "svc:billing-api", "kind": "service", "componentType": "kestrel"},
		{"id": "db:billing", "kind": "table", "componentType": "postgres"}
	],
	"edges": [
		{"source": "svc:billing-api", "target": "db:billing", "rps": 42.5, "errorRate": 0.01, "p95ms": 120}
	]
}`

func TestFromServiceGraph(t *testing.T) {
	g, err := FromServiceGraph([]byte(seedFixture))
	require.NoError(t, err)
	require.Equal(t, 2, g.NodeCount())
	require.Equal(t, 1, g.EdgeCount())

	n, ok := g.Node("svc:billing-api")
	require.True(t, ok)
	require.Equal(t, "svc:billing-api", n.Label)
	require.Equal(t, models.TypeService, n.Type)
	require.Equal(t, "prod", n.Env)
	require.Equal(t, "kestrel", n.Attrs["componentType"])

	e, ok := g.Edge(models.EdgeID("svc:billing-api", "db:billing", models.VerbCalls))
	require.True(t, ok)
	require.Equal(t, models.VerbCalls, e.Verb)
	require.Equal(t, 42.5, e.Attrs["rps"])
	require.Equal(t, 0.01, e.Attrs["errorRate"])
	require.Equal(t, map[string]any{"p95_ms": float64(120)}, e.Attrs["http"])
}

func TestFromServiceGraphRejectsDuplicateIDs(t *testing.T) {
	_, err := FromServiceGraph([]byte(`{
		"nodes": [
			{"id": "svc:a", "kind": "service", "componentType": "kestrel"},
			{"id": "svc:a", "kind": "service", "componentType": "kestrel"}
		],
		"edges": []
	}`))
	require.Error(t, err)
}

func TestFromServiceGraphRejectsBadJSON(t *testing.T) {
	_, err := FromServiceGraph([]byte(`{"nodes": [}`))
	require.Error(t, err)
}

func TestLoadServiceGraphMissingFile(t *testing.T) {
	_, err := LoadServiceGraph("testdata/does-not-exist.json")
	require.Error(t, err)
}
