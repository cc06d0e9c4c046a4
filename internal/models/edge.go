package models

import "strings"

// Verb is the kind of relationship an edge expresses.
type Verb string

const (
	VerbCalls           Verb = "calls"
	VerbProxiesTo       Verb = "proxies_to"
	VerbPublishesTo     Verb = "publishes_to"
	VerbConsumesFrom    Verb = "consumes_from"
	VerbHasSubscription Verb = "has_subscription"
	VerbReadsFrom       Verb = "reads_from"
	VerbWritesTo        Verb = "writes_to"
	VerbMapsTo          Verb = "maps_to"
	VerbCaches          Verb = "caches"
	VerbExposes         Verb = "exposes"
	VerbUsesORMEntity   Verb = "uses_orm_entity"
	VerbHasTenant       Verb = "has_tenant"
	VerbHasNamespace    Verb = "has_namespace"
	VerbHasTopic        Verb = "has_topic"
	VerbDLQOf           Verb = "dlq_of"
	VerbSchemaOf        Verb = "schema_of"
)

// Verbs lists every known verb in a stable order.
var Verbs = []Verb{
	VerbCalls, VerbProxiesTo, VerbPublishesTo, VerbConsumesFrom,
	VerbHasSubscription, VerbReadsFrom, VerbWritesTo, VerbMapsTo,
	VerbCaches, VerbExposes, VerbUsesORMEntity, VerbHasTenant,
	VerbHasNamespace, VerbHasTopic, VerbDLQOf, VerbSchemaOf,
}

var verbSet = func() map[Verb]struct{} {
	m := make(map[Verb]struct{}, len(Verbs))
	for _, v := range Verbs {
		m[v] = struct{}{}
	}
	return m
}()

// KnownVerb reports whether v is in the fixed verb enumeration.
func KnownVerb(v Verb) bool {
	_, ok := verbSet[v]
	return ok
}

// Edge is a directed, typed relationship between two nodes. ID is a pure
// function of (Src, Dst, Verb); two edges over the same triple share an id
// and the later one wins.
type Edge struct {
	ID    string         `json:"id"`
	Src   string         `json:"src"`
	Dst   string         `json:"dst"`
	Verb  Verb           `json:"verb"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// EdgeID derives the deterministic edge id for (src, dst, verb): the three
// parts joined as src__verb__dst with every rune outside [A-Za-z0-9:_.-]
// replaced by an underscore.
func EdgeID(src, dst string, verb Verb) string {
	raw := src + "__" + string(verb) + "__" + dst
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ':' || r == '_' || r == '.' || r == '-':
			return r
		default:
			return '_'
		}
	}, raw)
}
