// Package ingest adapts external read-only data sources into the core
// graph shape. It maps fields and nothing more; domain semantics of the
// inputs stay with their producers.
package ingest

import (
	"encoding/json"
	"os"

	"github.com/nexusnova/atlas/internal/models"
	appErr "github.com/nexusnova/atlas/pkg/errors"
)

// seedDoc is the service-graph seed shape emitted by the collector.
type seedDoc struct {
	Nodes []seedNode `json:"nodes"`
	Edges []seedEdge `json:"edges"`
}

type seedNode struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	ComponentType string `json:"componentType"`
}

type seedEdge struct {
	Source    string  `json:"source"`
	Target    string  `json:"target"`
	RPS       float64 `json:"rps"`
	ErrorRate float64 `json:"errorRate"`
	P95Ms     float64 `json:"p95ms"`
}

// FromServiceGraph converts seed JSON into a Graph. The fixed mapping:
// kind becomes the node type, id doubles as the label, source/target become
// src/dst, and every edge carries the "calls" verb with its metrics kept
// under attrs.
func FromServiceGraph(raw []byte) (*models.Graph, error) {
	var doc seedDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "invalid service graph seed")
	}

	g := models.NewGraph()
	for _, sn := range doc.Nodes {
		n := models.Node{
			ID:    sn.ID,
			Label: sn.ID,
			Type:  models.NodeType(sn.Kind),
			Env:   "prod",
			Attrs: map[string]any{
				"componentType": sn.ComponentType,
			},
		}
		if err := g.AddNode(n); err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInvalid, "invalid service graph seed")
		}
	}
	for _, se := range doc.Edges {
		g.PutEdge(models.Edge{
			ID:   models.EdgeID(se.Source, se.Target, models.VerbCalls),
			Src:  se.Source,
			Dst:  se.Target,
			Verb: models.VerbCalls,
			Attrs: map[string]any{
				"rps":       se.RPS,
				"errorRate": se.ErrorRate,
				"http":      map[string]any{"p95_ms": se.P95Ms},
			},
		})
	}
	return g, nil
}

// LoadServiceGraph reads and converts a seed file.
func LoadServiceGraph(path string) (*models.Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "read service graph seed")
	}
	return FromServiceGraph(raw)
}
