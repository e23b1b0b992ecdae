package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/bubble"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/store"
)

func TestAPI_QuoteWorkflow(t *testing.T) {
	// Setup
	tmpDir := t.TempDir()
	s, _ := store.New(filepath.Join(tmpDir, "test.db"))
	defer s.Close()

	srv := New(Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. Create a quote
	createBody := `{"text": "Nice!"}`
	resp, err := client.Post(ts.URL+"/api/quotes", "application/json", bytes.NewBufferString(createBody))
	if err != nil {
		t.Fatalf("POST /api/quotes error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var created struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	if created.Text != "Nice!" {
		t.Errorf("created text = %s, want Nice!", created.Text)
	}

	// 2. List quotes
	resp, _ = client.Get(ts.URL + "/api/quotes")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/quotes status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var listed struct {
		Quotes []struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"quotes"`
	}
	json.NewDecoder(resp.Body).Decode(&listed)
	resp.Body.Close()

	if len(listed.Quotes) != 1 {
		t.Fatalf("len(quotes) = %d, want 1", len(listed.Quotes))
	}

	// 3. Get single quote
	resp, _ = client.Get(ts.URL + "/api/quotes/" + created.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/quotes/%s status = %d, want %d", created.ID, resp.StatusCode, http.StatusOK)
	}
	resp.Body.Close()

	// 4. Delete quote
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/quotes/"+created.ID, nil)
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	resp.Body.Close()

	// 5. Verify deleted
	resp, _ = client.Get(ts.URL + "/api/quotes/" + created.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp.Body.Close()
}

func TestAPI_HealthCheck(t *testing.T) {
	srv := New(Config{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var health struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}
	json.NewDecoder(resp.Body).Decode(&health)

	if health.Status != "ok" {
		t.Errorf("status = %s, want ok", health.Status)
	}
}

func TestAPI_StateFeed(t *testing.T) {
	state := &stubState{
		bubbles: []bubble.Bubble{
			{
				ID:        "bubble-1",
				Text:      "Nice!",
				Anchor:    detector.Point{X: 320, Y: 120},
				DriftX:    12.5,
				Rotation:  -4,
				CreatedAt: time.Now(),
			},
		},
		hands: 1,
	}

	srv := New(Config{State: state})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/state"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial error = %v", err)
	}
	defer conn.Close()
	if resp != nil {
		resp.Body.Close()
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read message error = %v", err)
	}

	var payload struct {
		Bubbles []struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"bubbles"`
		ActiveHands int   `json:"active_hands"`
		Timestamp   int64 `json:"timestamp"`
	}
	if err := json.Unmarshal(msg, &payload); err != nil {
		t.Fatalf("unmarshal state message: %v", err)
	}

	if len(payload.Bubbles) != 1 {
		t.Fatalf("len(bubbles) = %d, want 1", len(payload.Bubbles))
	}
	if payload.Bubbles[0].Text != "Nice!" {
		t.Errorf("bubble text = %q, want Nice!", payload.Bubbles[0].Text)
	}
	if payload.ActiveHands != 1 {
		t.Errorf("active_hands = %d, want 1", payload.ActiveHands)
	}
	if payload.Timestamp == 0 {
		t.Error("expected non-zero timestamp")
	}
}
