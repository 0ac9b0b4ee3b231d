package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/bubblejar/jar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

type testClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func dial(t *testing.T, srv *Server) *testClient {
	t.Helper()

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &testClient{t: t, conn: conn}
}

func (c *testClient) send(req string) {
	c.t.Helper()
	require.NoError(c.t, c.conn.WriteMessage(websocket.TextMessage, []byte(req)))
}

func (c *testClient) read() Message {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(c.t, c.conn.ReadJSON(&msg))
	return msg
}

func (c *testClient) readState() StateData {
	c.t.Helper()
	msg := c.read()
	require.Equal(c.t, MessageTypeState, msg.Type, string(msg.Data))
	var data StateData
	require.NoError(c.t, json.Unmarshal(msg.Data, &data))
	return data
}

func (c *testClient) readError() ErrorData {
	c.t.Helper()
	msg := c.read()
	require.Equal(c.t, MessageTypeError, msg.Type, string(msg.Data))
	var data ErrorData
	require.NoError(c.t, json.Unmarshal(msg.Data, &data))
	return data
}

func TestServerHealth(t *testing.T) {
	t.Parallel()
	srv := NewServer("localhost:0", testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.handleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestInitialState(t *testing.T) {
	t.Parallel()
	c := dial(t, NewServer("localhost:0", testLogger(), WithSeed(42)))

	state := c.readState()
	assert.NotEmpty(t, state.ID)
	assert.Equal(t, 1, state.Game)
	assert.Zero(t, state.Moves)
	assert.False(t, state.Won)
	assert.Nil(t, state.Selected)
	assert.Empty(t, state.Outcome)

	require.Len(t, state.Jars, jar.JarCount)
	assert.Equal(t, jar.NumColors*jar.PerColor, state.Jars.Count())
}

func TestSelectAndMove(t *testing.T) {
	t.Parallel()
	c := dial(t, NewServer("localhost:0", testLogger(), WithSeed(42)))
	initial := c.readState()

	// Jar 0 is dealt full and jar 6 empty, so this move is always legal.
	c.send(`{"type":"select","jar":0}`)
	state := c.readState()
	assert.Equal(t, "selected", state.Outcome)
	require.NotNil(t, state.Selected)
	assert.Equal(t, 0, *state.Selected)

	c.send(`{"type":"select","jar":6}`)
	state = c.readState()
	assert.Equal(t, "moved", state.Outcome)
	assert.Equal(t, 1, state.Moves)
	assert.Nil(t, state.Selected)
	assert.Len(t, state.Jars[0], jar.PerColor-1)
	require.Len(t, state.Jars[6], 1)
	assert.Equal(t, initial.Jars[0][0], state.Jars[6][0])
}

func TestRejectedMoveReportsReason(t *testing.T) {
	t.Parallel()
	c := dial(t, NewServer("localhost:0", testLogger(), WithSeed(42)))
	c.readState()

	// Jars 0 and 1 are both dealt full.
	c.send(`{"type":"select","jar":0}`)
	c.readState()
	c.send(`{"type":"select","jar":1}`)

	state := c.readState()
	assert.Equal(t, "rejected", state.Outcome)
	assert.Equal(t, jar.RejectFullDestination.String(), state.Reason)
	assert.Zero(t, state.Moves)
}

func TestNewGameAndGetState(t *testing.T) {
	t.Parallel()
	c := dial(t, NewServer("localhost:0", testLogger(), WithSeed(7)))
	first := c.readState()

	c.send(`{"type":"new_game"}`)
	second := c.readState()
	assert.Equal(t, 2, second.Game)
	assert.Equal(t, first.ID, second.ID)

	c.send(`{"type":"get_state"}`)
	third := c.readState()
	assert.Equal(t, second.Jars, third.Jars)
}

func TestMatchColorOption(t *testing.T) {
	t.Parallel()
	c := dial(t, NewServer("localhost:0", testLogger(), WithRules(jar.Rules{MatchColor: true})))

	state := c.readState()
	assert.True(t, state.MatchColor)
}

func TestErrors(t *testing.T) {
	t.Parallel()
	c := dial(t, NewServer("localhost:0", testLogger()))
	c.readState()

	tests := []struct {
		name string
		req  string
		code string
	}{
		{"malformed json", `{"type":`, ErrCodeInvalidMessage},
		{"unknown type", `{"type":"undo"}`, ErrCodeUnknownType},
		{"missing jar", `{"type":"select"}`, ErrCodeInvalidMessage},
		{"jar out of range", `{"type":"select","jar":8}`, ErrCodeInvalidJar},
		{"negative jar", `{"type":"select","jar":-1}`, ErrCodeInvalidJar},
	}

	// Requests on one connection are handled in order, so these run serially.
	for _, tc := range tests {
		c.send(tc.req)
		assert.Equal(t, tc.code, c.readError().Code, tc.name)
	}
}

func TestSeededServersDealTheSameSessions(t *testing.T) {
	t.Parallel()

	a := dial(t, NewServer("localhost:0", testLogger(), WithSeed(99))).readState()
	b := dial(t, NewServer("localhost:0", testLogger(), WithSeed(99))).readState()
	assert.Equal(t, a.Jars, b.Jars)
}

func TestStopClosesConnections(t *testing.T) {
	t.Parallel()
	srv := NewServer("localhost:0", testLogger())
	c := dial(t, srv)
	c.readState()

	assert.Eventually(t, func() bool { return srv.ConnectionCount() == 1 }, time.Second, 10*time.Millisecond)

	srv.Stop()

	assert.Eventually(t, func() bool { return srv.ConnectionCount() == 0 }, time.Second, 10*time.Millisecond)
	_ = c.conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := c.conn.ReadMessage()
	assert.Error(t, err)
}
