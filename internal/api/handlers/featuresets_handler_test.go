package handlers

import (
    "net/http"
    "testing"
    "time"

    "github.com/go-chi/chi/v5"

    "github.com/nexusnova/atlas/internal/models"
    "github.com/nexusnova/atlas/internal/registry"
    "github.com/nexusnova/atlas/internal/session"
)

func featureSetsRouter(t *testing.T) (*chi.Mux, *registry.Registry) {
    t.Helper()
    g, err := models.FromParts(
        []models.Node{
            {ID: "svc:A", Label: "A", Type: models.TypeService, Attrs: map[string]any{"componentType": "kestrel"}},
            {ID: "db:X", Label: "X", Type: models.TypeTable, Attrs: map[string]any{"componentType": "postgres"}},
            {ID: "topic:T", Label: "T", Type: models.TypeTopic, Attrs: map[string]any{"componentType": "topic"}},
        },
        []models.Edge{
            {ID: models.EdgeID("svc:A", "db:X", models.VerbReadsFrom), Src: "svc:A", Dst: "db:X", Verb: models.VerbReadsFrom},
            {ID: models.EdgeID("svc:A", "topic:T", models.VerbPublishesTo), Src: "svc:A", Dst: "topic:T", Verb: models.VerbPublishesTo},
        },
    )
    if err != nil {
        t.Fatalf("seed graph: %v", err)
    }
    reg := registry.New()
    reg.Set("BILLING_CORE", g)
    sess := session.New(reg, "BILLING_CORE", 5*time.Millisecond)

    h := NewFeatureSetsHandler(reg, sess)
    r := chi.NewRouter()
    r.Get("/featuresets", h.List)
    r.Post("/featuresets", h.Create)
    r.Get("/featuresets/{name}", h.Get)
    r.Get("/featuresets/{name}/view", h.View)
    r.Get("/featuresets/{name}/path", h.Path)
    r.Get("/modes", h.Modes)
    return r, reg
}

func TestFeatureSetsList(t *testing.T) {
    r, _ := featureSetsRouter(t)
    rr, env := do(t, r, http.MethodGet, "/featuresets", "")
    if rr.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", rr.Code)
    }
    names := env.Data.([]interface{})
    if len(names) != 1 || names[0] != "BILLING_CORE" {
        t.Fatalf("unexpected names %v", names)
    }
}

func TestFeatureSetsCreate(t *testing.T) {
    r, reg := featureSetsRouter(t)
    rr, env := do(t, r, http.MethodPost, "/featuresets", `{"name":"USAGE_RATING"}`)
    if rr.Code != http.StatusCreated {
        t.Fatalf("expected 201, got %d %+v", rr.Code, env.Error)
    }
    if !reg.Has("USAGE_RATING") {
        t.Fatal("feature set not registered")
    }

    rr, env = do(t, r, http.MethodPost, "/featuresets", `{"name":"USAGE_RATING"}`)
    if rr.Code != http.StatusConflict {
        t.Fatalf("duplicate should be 409, got %d", rr.Code)
    }
    if env.Error == nil || env.Error.Code != "duplicate_feature_set" {
        t.Fatalf("expected duplicate_feature_set, got %+v", env.Error)
    }
}

func TestFeatureSetsCreateRequiresName(t *testing.T) {
    r, _ := featureSetsRouter(t)
    rr, env := do(t, r, http.MethodPost, "/featuresets", `{}`)
    if rr.Code != http.StatusBadRequest {
        t.Fatalf("expected 400, got %d", rr.Code)
    }
    if env.Error == nil || env.Error.Code != "invalid" {
        t.Fatalf("expected invalid, got %+v", env.Error)
    }
}

func TestFeatureSetsGetUnknown(t *testing.T) {
    r, _ := featureSetsRouter(t)
    rr, env := do(t, r, http.MethodGet, "/featuresets/NOPE", "")
    if rr.Code != http.StatusNotFound || env.Error.Code != "not_found" {
        t.Fatalf("expected not_found 404, got %d %+v", rr.Code, env.Error)
    }
}

func TestFeatureSetsView(t *testing.T) {
    r, _ := featureSetsRouter(t)

    rr, env := do(t, r, http.MethodGet, "/featuresets/BILLING_CORE/view?mode=storage", "")
    if rr.Code != http.StatusOK {
        t.Fatalf("view: got %d %+v", rr.Code, env.Error)
    }
    v := env.Data.(map[string]interface{})
    // storage mode keeps the service/database pair and drops the messaging
    // leg plus the now-isolated topic.
    if n := len(v["nodes"].([]interface{})); n != 2 {
        t.Fatalf("expected 2 nodes in storage view, got %d", n)
    }
    if e := len(v["edges"].([]interface{})); e != 1 {
        t.Fatalf("expected 1 edge in storage view, got %d", e)
    }

    rr, env = do(t, r, http.MethodGet, "/featuresets/BILLING_CORE/view?exclude=postgres", "")
    if rr.Code != http.StatusOK {
        t.Fatalf("view exclude: got %d %+v", rr.Code, env.Error)
    }
    v = env.Data.(map[string]interface{})
    for _, raw := range v["nodes"].([]interface{}) {
        n := raw.(map[string]interface{})
        if n["id"] == "db:X" {
            t.Fatal("excluded category survived the filter")
        }
    }
}

func TestFeatureSetsPath(t *testing.T) {
    r, _ := featureSetsRouter(t)
    rr, env := do(t, r, http.MethodGet, "/featuresets/BILLING_CORE/path?from=svc:A&to=topic:T", "")
    if rr.Code != http.StatusOK {
        t.Fatalf("path: got %d %+v", rr.Code, env.Error)
    }

    rr, _ = do(t, r, http.MethodGet, "/featuresets/BILLING_CORE/path?from=topic:T&to=db:X", "")
    if rr.Code != http.StatusNotFound {
        t.Fatalf("unreachable path should be 404, got %d", rr.Code)
    }
}

func TestModesListing(t *testing.T) {
    r, _ := featureSetsRouter(t)
    rr, env := do(t, r, http.MethodGet, "/modes", "")
    if rr.Code != http.StatusOK {
        t.Fatalf("modes: got %d", rr.Code)
    }
    modes := env.Data.([]interface{})
    if len(modes) != 6 {
        t.Fatalf("expected 6 view modes, got %d", len(modes))
    }
    first := modes[0].(map[string]interface{})
    if first["name"] != "all" {
        t.Fatalf("expected all first, got %v", first["name"])
    }
}
