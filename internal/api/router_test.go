package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nexusnova/atlas/internal/api/handlers"
	"github.com/nexusnova/atlas/internal/models"
	"github.com/nexusnova/atlas/internal/overview"
	"github.com/nexusnova/atlas/internal/registry"
	"github.com/nexusnova/atlas/internal/session"
	"github.com/nexusnova/atlas/internal/traces"
	"github.com/nexusnova/atlas/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("info", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

func testServer(t *testing.T) (*httptest.Server, *session.Session) {
	t.Helper()
	reg := registry.New()
	reg.Set("BILLING_CORE", models.NewGraph())
	sess := session.New(reg, "BILLING_CORE", 5*time.Millisecond)

	srv := httptest.NewServer(NewRouter(Dependencies{
		FeatureSetsHandler: handlers.NewFeatureSetsHandler(reg, sess),
		SessionHandler:     handlers.NewSessionHandler(sess),
		OverviewHandler:    handlers.NewOverviewHandler(overview.NewService(overview.Catalogue{})),
		TracesHandler:      handlers.NewTracesHandler(traces.NewCatalog(nil)),
		EventsHandler:      handlers.NewEventsHandler(sess),
	}))
	t.Cleanup(srv.Close)
	return srv, sess
}

// The events route upgrades through the full middleware chain, so the
// logging wrapper must keep the underlying connection hijackable.
func TestEventsStreamUpgradesAndDelivers(t *testing.T) {
	srv, sess := testServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/events"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		t.Fatalf("websocket dial failed (status %d): %v", status, err)
	}
	defer conn.Close()

	// The server registers its subscription just after the handshake;
	// nudge with pick events until the first frame confirms it is live.
	stop := make(chan struct{})
	go func() {
		tick := time.NewTicker(20 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tick.C:
				sess.Pick(nil)
			}
		}
	}()

	var ev struct {
		Kind string `json:"kind"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("no event frame arrived: %v", err)
	}
	close(stop)
	if ev.Kind != "picked" {
		t.Fatalf("expected picked frame, got %q", ev.Kind)
	}

	sess.SetEditing(true)
	if _, err := sess.AddNode(session.NodeInput{ID: "svc:new", Type: models.TypeService}); err != nil {
		t.Fatalf("add node: %v", err)
	}

	for {
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("waiting for node_added: %v", err)
		}
		switch ev.Kind {
		case "picked", "editing_changed":
			// Stragglers from the nudge loop and the mode switch.
		case "node_added":
			return
		default:
			t.Fatalf("unexpected event %q", ev.Kind)
		}
	}
}

func TestHealthThroughRouter(t *testing.T) {
	srv, _ := testServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
