package models

import (
	"regexp"
	"testing"
)

func TestEdgeIDDeterministic(t *testing.T) {
	a := EdgeID("svc:billing-api", "topic:prod/billing.events", VerbPublishesTo)
	b := EdgeID("svc:billing-api", "topic:prod/billing.events", VerbPublishesTo)
	if a != b {
		t.Fatalf("edge id not deterministic: %q vs %q", a, b)
	}
}

func TestEdgeIDCharset(t *testing.T) {
	valid := regexp.MustCompile(`^[A-Za-z0-9:_.\-]+$`)
	cases := [][3]string{
		{"svc:kestrel-edge", "route:edge:/api/devices", "exposes"},
		{"route:edge:/api/devices", "svc:billing-api", "proxies_to"},
		{"a b/c?d", "x@y#z", "calls"},
	}
	for _, c := range cases {
		id := EdgeID(c[0], c[1], Verb(c[2]))
		if !valid.MatchString(id) {
			t.Fatalf("edge id %q contains characters outside the allowed set", id)
		}
	}
}

func TestEdgeIDSanitizesSlashes(t *testing.T) {
	id := EdgeID("route:edge:/api/devices", "svc:billing-api", VerbProxiesTo)
	want := "route:edge:_api_devices__proxies_to__svc:billing-api"
	if id != want {
		t.Fatalf("got %q, want %q", id, want)
	}
}

func TestKnownVerb(t *testing.T) {
	if !KnownVerb(VerbDLQOf) {
		t.Fatal("dlq_of should be a known verb")
	}
	if KnownVerb("launders_money") {
		t.Fatal("unexpected verb accepted")
	}
}
