// Package views holds the fixed view-mode registry: named presets that
// restrict which verbs and node types a rendered graph includes.
package views

import (
	"github.com/nexusnova/atlas/internal/models"
	appErr "github.com/nexusnova/atlas/pkg/errors"
)

// Mode is a named, immutable filter preset. A nil Types set means the mode
// shows every node type (the "all" inventory view).
type Mode struct {
	Name  string            `json:"name"`
	Label string            `json:"label"`
	Verbs []models.Verb     `json:"verbs"`
	Types []models.NodeType `json:"types,omitempty"`

	verbSet map[models.Verb]struct{}
	typeSet map[models.NodeType]struct{}
}

// AllowsVerb reports whether the mode includes the verb.
func (m Mode) AllowsVerb(v models.Verb) bool {
	_, ok := m.verbSet[v]
	return ok
}

// RestrictsTypes reports whether the mode declares a node-type restriction.
func (m Mode) RestrictsTypes() bool { return m.typeSet != nil }

// AllowsType reports whether the mode includes the node type. Modes without
// a type restriction allow everything.
func (m Mode) AllowsType(t models.NodeType) bool {
	if m.typeSet == nil {
		return true
	}
	_, ok := m.typeSet[t]
	return ok
}

func newMode(name, label string, verbs []models.Verb, types []models.NodeType) Mode {
	m := Mode{Name: name, Label: label, Verbs: verbs, Types: types}
	m.verbSet = make(map[models.Verb]struct{}, len(verbs))
	for _, v := range verbs {
		m.verbSet[v] = struct{}{}
	}
	if types != nil {
		m.typeSet = make(map[models.NodeType]struct{}, len(types))
		for _, t := range types {
			m.typeSet[t] = struct{}{}
		}
	}
	return m
}

// The registry is process-wide constant data, defined once and never
// mutated at runtime.
var (
	order = []string{"all", "api", "messaging", "storage", "cache", "orm"}

	modes = map[string]Mode{
		"all": newMode("all", "All", models.Verbs, nil),
		"api": newMode("api", "API / Kestrel",
			[]models.Verb{models.VerbCalls, models.VerbProxiesTo, models.VerbExposes},
			[]models.NodeType{models.TypeService, models.TypeRoute, models.TypeEndpoint}),
		"messaging": newMode("messaging", "Messaging / Pulsar",
			[]models.Verb{
				models.VerbPublishesTo, models.VerbConsumesFrom, models.VerbHasSubscription,
				models.VerbHasTenant, models.VerbHasNamespace, models.VerbHasTopic,
				models.VerbDLQOf, models.VerbSchemaOf,
			},
			[]models.NodeType{
				models.TypeService, models.TypeCluster, models.TypeTenant,
				models.TypeNamespace, models.TypeTopic, models.TypeSubscription,
				models.TypeSchema,
			}),
		"storage": newMode("storage", "Storage",
			[]models.Verb{models.VerbReadsFrom, models.VerbWritesTo, models.VerbMapsTo},
			[]models.NodeType{models.TypeService, models.TypeTable, models.TypeCollection, models.TypeEntity}),
		"cache": newMode("cache", "Cache",
			[]models.Verb{models.VerbCaches},
			[]models.NodeType{models.TypeService, models.TypeKeyspace, models.TypeCache}),
		"orm": newMode("orm", "ORM / Hibernate",
			[]models.Verb{models.VerbUsesORMEntity, models.VerbMapsTo, models.VerbCaches},
			[]models.NodeType{models.TypeService, models.TypeEntity, models.TypeTable, models.TypeCache}),
	}
)

// Resolve returns the mode registered under name, or unknown_view_mode.
func Resolve(name string) (Mode, error) {
	m, ok := modes[name]
	if !ok {
		return Mode{}, appErr.Newf(appErr.CodeUnknownViewMode, "unknown view mode: %s", name)
	}
	return m, nil
}

// All returns every registered mode in presentation order.
func All() []Mode {
	out := make([]Mode, 0, len(order))
	for _, name := range order {
		out = append(out, modes[name])
	}
	return out
}
