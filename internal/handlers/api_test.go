// internal/handlers/api_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/quizroom/quizroom/internal/broadcast"
	"github.com/quizroom/quizroom/internal/coordinator"
	"github.com/quizroom/quizroom/internal/session"
	"github.com/quizroom/quizroom/internal/store"
)

func newTestServer() (*coordinator.Coordinator, *logrus.Logger) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	coord := coordinator.New(store.NewMemoryStore(), broadcast.NewHub(), logger)
	return coord, logger
}

// TestCreateSession checks that /session/create returns a code and the
// host player id.
func TestCreateSession(t *testing.T) {
	coord, logger := newTestServer()

	body := `{"playerName":"Alice"}`
	req := httptest.NewRequest("POST", "/session/create", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	CreateSessionHandler(coord, logger).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Code     string `json:"code"`
		PlayerID string `json:"playerId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Code) != session.CodeLength {
		t.Fatalf("bad session code %q", resp.Code)
	}
	if resp.PlayerID == "" {
		t.Fatal("missing playerId")
	}
}

func TestCreateSessionMissingName(t *testing.T) {
	coord, logger := newTestServer()

	req := httptest.NewRequest("POST", "/session/create", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()

	CreateSessionHandler(coord, logger).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestJoinSessionUnknownCode(t *testing.T) {
	coord, logger := newTestServer()

	body := `{"code":"NOPE00","playerName":"Bob"}`
	req := httptest.NewRequest("POST", "/session/join", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	JoinSessionHandler(coord, logger).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown code, got %d", w.Code)
	}
}

func TestJoinThenQueryActivePlayer(t *testing.T) {
	coord, logger := newTestServer()

	createReq := httptest.NewRequest("POST", "/session/create", bytes.NewBufferString(`{"playerName":"Alice"}`))
	createW := httptest.NewRecorder()
	CreateSessionHandler(coord, logger).ServeHTTP(createW, createReq)

	var created struct {
		Code     string `json:"code"`
		PlayerID string `json:"playerId"`
	}
	if err := json.Unmarshal(createW.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}

	joinBody, _ := json.Marshal(map[string]string{"code": created.Code, "playerName": "Bob"})
	joinReq := httptest.NewRequest("POST", "/session/join", bytes.NewBuffer(joinBody))
	joinW := httptest.NewRecorder()
	JoinSessionHandler(coord, logger).ServeHTTP(joinW, joinReq)

	if joinW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK on join, got %d: %s", joinW.Code, joinW.Body.String())
	}

	activeReq := httptest.NewRequest("GET", "/session/active?code="+created.Code, nil)
	activeW := httptest.NewRecorder()
	ActivePlayerHandler(coord, logger).ServeHTTP(activeW, activeReq)

	if activeW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", activeW.Code)
	}
	var active struct {
		ActivePlayerID string `json:"activePlayerId"`
	}
	if err := json.Unmarshal(activeW.Body.Bytes(), &active); err != nil {
		t.Fatalf("failed to decode active response: %v", err)
	}
	if active.ActivePlayerID != created.PlayerID {
		t.Fatalf("active player should default to host %s, got %s", created.PlayerID, active.ActivePlayerID)
	}
}

func TestActivePlayerUnknownCode(t *testing.T) {
	coord, logger := newTestServer()

	req := httptest.NewRequest("GET", "/session/active?code=NOPE00", nil)
	w := httptest.NewRecorder()
	ActivePlayerHandler(coord, logger).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown code, got %d", w.Code)
	}
}
