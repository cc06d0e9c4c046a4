package flow

import (
	"github.com/nexusnova/atlas/internal/models"
	appErr "github.com/nexusnova/atlas/pkg/errors"
)

// Step is one hop of a computed path.
type Step struct {
	From string      `json:"from"`
	Edge models.Edge `json:"edge"`
	To   string      `json:"to"`
}

// Path is the shortest directed walk between two nodes, start to end.
type Path struct {
	Nodes []string      `json:"nodes"`
	Edges []models.Edge `json:"edges"`
	Steps []Step        `json:"steps"`
}

// FindPath runs a breadth-first search over the directed adjacency
// (src -> dst only) and returns the shortest path by edge count. Outgoing
// edges are explored in their insertion order, so ties resolve to the path
// discovered first in edge order. Returns not_found when either endpoint is
// absent or no directed walk connects them.
func FindPath(g *models.Graph, startID, endID string) (*Path, error) {
	if !g.HasNode(startID) || !g.HasNode(endID) {
		return nil, appErr.Newf(appErr.CodeNotFound, "no path from %s to %s", startID, endID)
	}

	out := make(map[string][]models.Edge, g.NodeCount())
	for _, e := range g.Edges() {
		out[e.Src] = append(out[e.Src], e)
	}

	type pred struct {
		id   string
		edge models.Edge
	}
	prev := map[string]pred{}
	seen := map[string]struct{}{startID: {}}
	queue := []string{startID}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == endID {
			break
		}
		for _, e := range out[cur] {
			if _, ok := seen[e.Dst]; ok {
				continue
			}
			seen[e.Dst] = struct{}{}
			prev[e.Dst] = pred{id: cur, edge: e}
			queue = append(queue, e.Dst)
		}
	}

	if _, ok := seen[endID]; !ok {
		return nil, appErr.Newf(appErr.CodeNotFound, "no path from %s to %s", startID, endID)
	}

	// Walk predecessors end to start, then reverse into start-to-end order.
	p := &Path{Nodes: []string{endID}}
	for walk := endID; walk != startID; {
		pr, ok := prev[walk]
		if !ok {
			break
		}
		p.Steps = append(p.Steps, Step{From: pr.id, Edge: pr.edge, To: walk})
		p.Edges = append(p.Edges, pr.edge)
		p.Nodes = append(p.Nodes, pr.id)
		walk = pr.id
	}
	reverse(p.Nodes)
	reverse(p.Edges)
	reverse(p.Steps)
	return p, nil
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
