package userws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"caredesk/internal/adapters/http/middleware"
	"caredesk/internal/adapters/http/response"
	"caredesk/internal/adapters/memory"
	"caredesk/internal/core/token"
	"caredesk/internal/domain"
	"caredesk/internal/logger"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	hub    *Hub
	tokens *token.Service
	server *httptest.Server
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	log := logger.Nop()
	tokens := token.NewService("ws-secret", time.Hour)
	hub := NewHub(context.Background(), log)
	go hub.Run()
	t.Cleanup(hub.Stop)

	auth := middleware.NewAuthenticator(tokens, memory.NewRevocationStore())
	h := NewHandler(hub, auth, response.NewJSONWriter(log), log, nil)

	server := httptest.NewServer(http.HandlerFunc(h.Serve))
	t.Cleanup(server.Close)

	return &harness{hub: hub, tokens: tokens, server: server}
}

func (h *harness) dial(t *testing.T, userID int64) *websocket.Conn {
	t.Helper()

	tok, _, err := h.tokens.Issue(userID)
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(h.server.URL, "http") + "/ws?token=" + tok
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// The pong only comes back once the hub knows the connection.
	require.NoError(t, conn.WriteJSON(domain.WsClientMessage{Type: "ping"}))
	assert.Equal(t, "pong", readEvent(t, conn).Event)

	return conn
}

type received struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

func readEvent(t *testing.T, conn *websocket.Conn) received {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev received
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestServeRejectsMissingToken(t *testing.T) {
	h := newHarness(t)

	url := "ws" + strings.TrimPrefix(h.server.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServeAcceptsBearerHeader(t *testing.T) {
	h := newHarness(t)

	tok, _, err := h.tokens.Issue(3)
	require.NoError(t, err)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+tok)

	url := "ws" + strings.TrimPrefix(h.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(domain.WsClientMessage{Type: "ping"}))
	assert.Equal(t, "pong", readEvent(t, conn).Event)
}

func TestSendToUserOnlyReachesOwner(t *testing.T) {
	h := newHarness(t)

	owner := h.dial(t, 1)
	other := h.dial(t, 2)

	h.hub.SendToUser(1, &domain.WsServerEvent{
		Event:   domain.EventAssignmentCreated,
		Payload: domain.EventAssignmentCreatedPayload{OwnerID: 1, AssignmentID: 9},
	})

	ev := readEvent(t, owner)
	assert.Equal(t, domain.EventAssignmentCreated, ev.Event)
	assert.JSONEq(t, `9`, string(field(t, ev.Payload, "assignment_id")))

	require.NoError(t, other.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := other.ReadMessage()
	require.Error(t, err, "other users receive nothing")
}

func TestDisconnectClosesUserSockets(t *testing.T) {
	h := newHarness(t)

	conn := h.dial(t, 1)

	h.hub.SendToUser(1, &domain.WsServerEvent{Event: domain.EventAccountDeleted})
	h.hub.Disconnect(1)

	assert.Equal(t, domain.EventAccountDeleted, readEvent(t, conn).Event)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNoStatusReceived, websocket.CloseNormalClosure) ||
		strings.Contains(err.Error(), "close"), "unexpected error: %v", err)
}

func field(t *testing.T, raw json.RawMessage, key string) json.RawMessage {
	t.Helper()

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	return m[key]
}
