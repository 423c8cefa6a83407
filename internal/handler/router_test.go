package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"relaychat/internal/app/chat"
	"relaychat/internal/app/moderation"
	"relaychat/internal/configs"
)

type testServer struct {
	*httptest.Server
	hub *chat.Hub
}

func newTestServer(t *testing.T, cfg *configs.AppConfig) *testServer {
	t.Helper()

	filter, err := moderation.NewFilter([]string{"darn"})
	require.NoError(t, err)

	hub := chat.NewHub(filter)
	go hub.Run()

	srv := httptest.NewServer(Router(&AppDeps{Hub: hub, Config: cfg}))
	t.Cleanup(func() {
		hub.Stop()
		srv.Close()
	})

	return &testServer{Server: srv, hub: hub}
}

func devConfig() *configs.AppConfig {
	return &configs.AppConfig{Environment: configs.EnvDevelopment, Port: 8080, SendBufferSize: 64}
}

// wireFrame is the union of outbound frame shapes.
type wireFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Ack   *uint64         `json:"ack"`
	Error string          `json:"error"`
}

type chatMessage struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"`
}

type roomData struct {
	Room  string `json:"room"`
	Users []struct {
		Username string `json:"username"`
	} `json:"users"`
}

type wsClient struct {
	t    *testing.T
	conn *websocket.Conn
	ack  uint64
}

func dial(t *testing.T, srv *testServer) *wsClient {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &wsClient{t: t, conn: conn}
}

// emit sends an event and returns the ack id used.
func (c *wsClient) emit(event string, data any) uint64 {
	c.t.Helper()
	c.ack++
	raw, err := json.Marshal(data)
	require.NoError(c.t, err)
	require.NoError(c.t, c.conn.WriteJSON(chat.InboundFrame{Event: event, Data: raw, Ack: &c.ack}))
	return c.ack
}

func (c *wsClient) next() wireFrame {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f wireFrame
	require.NoError(c.t, c.conn.ReadJSON(&f))
	return f
}

func (c *wsClient) expectMessage(event, sender, text string) {
	c.t.Helper()
	f := c.next()
	require.Equal(c.t, event, f.Event)
	var m chatMessage
	require.NoError(c.t, json.Unmarshal(f.Data, &m))
	require.Equal(c.t, sender, m.Sender)
	require.Equal(c.t, text, m.Text)
	require.Positive(c.t, m.CreatedAt)
}

func (c *wsClient) expectRoster(room string, names ...string) {
	c.t.Helper()
	f := c.next()
	require.Equal(c.t, chat.EventRoomData, f.Event)
	var data roomData
	require.NoError(c.t, json.Unmarshal(f.Data, &data))
	require.Equal(c.t, room, data.Room)

	got := make([]string, 0, len(data.Users))
	for _, u := range data.Users {
		got = append(got, u.Username)
	}
	require.Equal(c.t, names, got)
}

func (c *wsClient) expectAck(id uint64, errMsg string) {
	c.t.Helper()
	f := c.next()
	require.Equal(c.t, chat.EventAck, f.Event)
	require.NotNil(c.t, f.Ack)
	require.Equal(c.t, id, *f.Ack)
	require.Equal(c.t, errMsg, f.Error)
}

func TestWebSocket_Scenario(t *testing.T) {
	srv := newTestServer(t, devConfig())
	ann := dial(t, srv)
	bob := dial(t, srv)

	id := ann.emit(chat.EventJoin, chat.JoinPayload{Username: "Ann", Room: "x"})
	ann.expectMessage(chat.EventMessage, "Admin", "Welcome!")
	ann.expectRoster("x", "Ann")
	ann.expectAck(id, "")

	id = bob.emit(chat.EventJoin, chat.JoinPayload{Username: "Bob", Room: "x"})
	bob.expectMessage(chat.EventMessage, "Admin", "Welcome!")
	bob.expectRoster("x", "Ann", "Bob")
	bob.expectAck(id, "")
	ann.expectMessage(chat.EventMessage, "Admin", "Bob has joined!")
	ann.expectRoster("x", "Ann", "Bob")

	id = bob.emit(chat.EventSendMessage, "hello")
	bob.expectMessage(chat.EventMessage, "Bob", "hello")
	bob.expectAck(id, "")
	ann.expectMessage(chat.EventMessage, "Bob", "hello")

	id = ann.emit(chat.EventSendLocation, chat.LocationPayload{Lat: 1.5, Long: 2.25})
	ann.expectMessage(chat.EventLocationMessage, "Ann", "https://google.com/maps?q=1.5,2.25")
	ann.expectAck(id, "")
	bob.expectMessage(chat.EventLocationMessage, "Ann", "https://google.com/maps?q=1.5,2.25")

	require.NoError(t, ann.conn.Close())
	bob.expectMessage(chat.EventMessage, "Admin", "Ann has left!")
	bob.expectRoster("x", "Bob")
}

func TestWebSocket_Rejections(t *testing.T) {
	srv := newTestServer(t, devConfig())
	ann := dial(t, srv)
	impostor := dial(t, srv)

	id := ann.emit(chat.EventSendMessage, "hello")
	ann.expectAck(id, "User not found")

	id = ann.emit(chat.EventJoin, chat.JoinPayload{Username: "Ann", Room: "x"})
	ann.expectMessage(chat.EventMessage, "Admin", "Welcome!")
	ann.expectRoster("x", "Ann")
	ann.expectAck(id, "")

	id = impostor.emit(chat.EventJoin, chat.JoinPayload{Username: "aNN", Room: "x"})
	impostor.expectAck(id, "Username is in use!")

	id = ann.emit(chat.EventSendMessage, "well darn")
	ann.expectAck(id, "Profanity is not allowed")

	id = impostor.emit(chat.EventJoin, chat.JoinPayload{Username: "Ann", Room: "y"})
	impostor.expectMessage(chat.EventMessage, "Admin", "Welcome!")
	impostor.expectRoster("y", "Ann")
	impostor.expectAck(id, "")
}

func TestRoomEndpoints(t *testing.T) {
	srv := newTestServer(t, devConfig())
	ann := dial(t, srv)

	id := ann.emit(chat.EventJoin, chat.JoinPayload{Username: "Ann", Room: "lobby"})
	ann.expectMessage(chat.EventMessage, "Admin", "Welcome!")
	ann.expectRoster("lobby", "Ann")
	ann.expectAck(id, "")

	body := getJSON(t, srv.URL+"/api/rooms", http.StatusOK)
	require.JSONEq(t, `{"rooms":[{"room":"lobby","users":1}]}`, string(body.Data))

	body = getJSON(t, srv.URL+"/api/rooms/lobby", http.StatusOK)
	require.JSONEq(t, `{"room":"lobby","users":[{"username":"Ann"}]}`, string(body.Data))

	body = getJSON(t, srv.URL+"/api/rooms/empty", http.StatusNotFound)
	require.Equal(t, "Chat room not found.", body.Message)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, devConfig())

	body := getJSON(t, srv.URL+"/health", http.StatusOK)
	require.JSONEq(t, `{"status":"ok","service":"relaychat"}`, string(body.Data))

	res, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestWebSocket_OriginCheck(t *testing.T) {
	cfg := &configs.AppConfig{
		Environment:    configs.EnvProduction,
		Port:           8080,
		AllowedOrigins: []string{"https://chat.example"},
		SendBufferSize: 8,
	}
	srv := newTestServer(t, cfg)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	_, res, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"https://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, res)
	require.Equal(t, http.StatusForbidden, res.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"https://chat.example"}})
	require.NoError(t, err)
	require.NoError(t, conn.Close())
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>chat</h1>"), 0o600))

	cfg := devConfig()
	cfg.PublicDir = dir
	srv := newTestServer(t, cfg)

	res, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func getJSON(t *testing.T, url string, status int) envelope {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, status, res.StatusCode)

	var body envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}
