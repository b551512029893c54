package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	router "github.com/sboyar/huddle/internal/adapters/http"
	"github.com/sboyar/huddle/internal/app"
	"github.com/sboyar/huddle/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Mode:         "release",
		Port:         8080,
		StaticPath:   "./web",
		ReadLimit:    32768,
		PingPeriod:   54 * time.Second,
		Secret:       "test-secret",
		JoinLimit:    10,
		JoinInterval: 10 * time.Second,
		ICEServers: []config.ICEServer{
			{URLs: []string{"stun:stun.example.com:3478"}},
			{URLs: []string{"turn:turn.example.com:3478"}, Username: "u", Credential: "p"},
		},
	}
}

func TestStatusEndpoint(t *testing.T) {
	rt := app.NewRouter()
	r := router.SetupRouter(context.Background(), testConfig(), rt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Rooms       int `json:"rooms"`
		Connections int `json:"connections"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad status body: %v", err)
	}
	if body.Rooms != 0 || body.Connections != 0 {
		t.Errorf("fresh server status = %+v, want zeros", body)
	}
}

func TestICEServersEndpoint(t *testing.T) {
	rt := app.NewRouter()
	r := router.SetupRouter(context.Background(), testConfig(), rt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ice-servers", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		ICEServers []struct {
			URLs     []string `json:"urls"`
			Username string   `json:"username"`
		} `json:"iceServers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad ice-servers body: %v", err)
	}
	if len(body.ICEServers) != 2 {
		t.Fatalf("iceServers = %+v, want 2 entries", body.ICEServers)
	}
	if body.ICEServers[0].URLs[0] != "stun:stun.example.com:3478" {
		t.Errorf("first entry = %+v", body.ICEServers[0])
	}
	if body.ICEServers[1].Username != "u" {
		t.Errorf("turn entry lost its username: %+v", body.ICEServers[1])
	}
}

func TestClientTokenCookieSet(t *testing.T) {
	rt := app.NewRouter()
	r := router.SetupRouter(context.Background(), testConfig(), rt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	r.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == "ct" && c.Value != "" {
			return
		}
	}
	t.Error("client token cookie not set on first request")
}
