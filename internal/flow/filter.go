// Package flow derives renderable graph subsets: the display filter
// pipeline and the end-to-end path finder. Everything here is a pure
// function over a graph; callers re-invoke on input change.
package flow

import (
	"github.com/nexusnova/atlas/internal/models"
	"github.com/nexusnova/atlas/internal/views"
)

// FilterOptions narrow a graph for display.
type FilterOptions struct {
	// AllowIDs is an explicit node allow-list from an external selection.
	// Empty means no restriction.
	AllowIDs []string
	// Categories maps a component category to an enabled flag. Missing
	// categories default to true; only an explicit false hides.
	Categories map[string]bool
	// Mode is the active view mode.
	Mode views.Mode
}

// View is a renderer-agnostic node/edge pair. Both slices are freshly
// allocated and never alias the source graph.
type View struct {
	Nodes []models.Node `json:"nodes"`
	Edges []models.Edge `json:"edges"`
}

// Apply runs the filter stages in their fixed order: explicit allow-list,
// category flags, verb pre-filter, then the mode's type restriction with
// its edge-endpoint consistency pass. Typed modes drop nodes left without
// any incident edge; the unrestricted mode keeps isolated nodes, since it
// is an inventory rather than a connectivity view.
func Apply(g *models.Graph, opts FilterOptions) View {
	nodes := make([]models.Node, 0, g.NodeCount())
	nodes = append(nodes, g.Nodes()...)

	if len(opts.AllowIDs) > 0 {
		allowed := make(map[string]struct{}, len(opts.AllowIDs))
		for _, id := range opts.AllowIDs {
			allowed[id] = struct{}{}
		}
		nodes = keepNodes(nodes, func(n models.Node) bool {
			_, ok := allowed[n.ID]
			return ok
		})
	}

	if len(opts.Categories) > 0 {
		nodes = keepNodes(nodes, func(n models.Node) bool {
			enabled, known := opts.Categories[n.Category()]
			return !known || enabled
		})
	}

	// Verb pre-filter runs before the type restriction so that typed
	// modes only consider edges the mode can show at all.
	edges := make([]models.Edge, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		if opts.Mode.AllowsVerb(e.Verb) {
			edges = append(edges, e)
		}
	}

	if opts.Mode.RestrictsTypes() {
		nodes = keepNodes(nodes, func(n models.Node) bool {
			return opts.Mode.AllowsType(n.Type)
		})
		edges = keepEdges(edges, endpointsIn(nodes))

		used := make(map[string]struct{}, len(edges)*2)
		for _, e := range edges {
			used[e.Src] = struct{}{}
			used[e.Dst] = struct{}{}
		}
		nodes = keepNodes(nodes, func(n models.Node) bool {
			_, ok := used[n.ID]
			return ok
		})
	} else {
		edges = keepEdges(edges, endpointsIn(nodes))
	}

	return View{Nodes: nodes, Edges: edges}
}

func keepNodes(nodes []models.Node, keep func(models.Node) bool) []models.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}

func keepEdges(edges []models.Edge, keep func(models.Edge) bool) []models.Edge {
	out := edges[:0]
	for _, e := range edges {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func endpointsIn(nodes []models.Node) func(models.Edge) bool {
	present := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		present[n.ID] = struct{}{}
	}
	return func(e models.Edge) bool {
		_, src := present[e.Src]
		_, dst := present[e.Dst]
		return src && dst
	}
}
