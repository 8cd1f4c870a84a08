package api

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialChat(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/chat"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readChatMessage(t *testing.T, conn *websocket.Conn) ChatMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	var msg ChatMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read message: %v", err)
	}
	return msg
}

func TestChatAnswer(t *testing.T) {
	srv := newTestServer(t, Config{})
	conn := dialChat(t, srv)

	if err := conn.WriteJSON(ChatRequest{Message: "John 3:16"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	msg := readChatMessage(t, conn)
	if msg.Type != "answer" {
		t.Fatalf("type = %q, want answer (message: %s)", msg.Type, msg.Message)
	}
	if msg.Answer == nil || !strings.Contains(msg.Answer.Answer, kjvJohn316) {
		t.Errorf("answer missing verse text: %+v", msg.Answer)
	}
	if msg.Timestamp == "" {
		t.Error("timestamp missing")
	}
}

func TestChatFollowUp(t *testing.T) {
	srv := newTestServer(t, Config{})
	conn := dialChat(t, srv)

	if err := conn.WriteJSON(ChatRequest{Message: "Where is Jericho?"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	first := readChatMessage(t, conn)
	if first.Type != "answer" || first.Answer == nil {
		t.Fatalf("first reply: %+v", first)
	}
	if first.Answer.Metadata.Location != "Jericho" {
		t.Fatalf("first answer location = %q, want Jericho", first.Answer.Metadata.Location)
	}

	// A bare pronoun picks up the subject of the previous turn from
	// this connection's history.
	if err := conn.WriteJSON(ChatRequest{Message: "it"}); err != nil {
		t.Fatalf("write follow-up: %v", err)
	}
	second := readChatMessage(t, conn)
	if second.Type != "answer" || second.Answer == nil {
		t.Fatalf("second reply: %+v", second)
	}
	if second.Answer.Metadata.Location != "Jericho" {
		t.Errorf("follow-up location = %q, want Jericho", second.Answer.Metadata.Location)
	}
}

func TestChatInvalidMessages(t *testing.T) {
	srv := newTestServer(t, Config{})
	conn := dialChat(t, srv)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{")); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg := readChatMessage(t, conn)
	if msg.Type != "error" || !strings.Contains(msg.Message, "Invalid JSON") {
		t.Errorf("bad json reply: %+v", msg)
	}

	if err := conn.WriteJSON(ChatRequest{Message: "   "}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg = readChatMessage(t, conn)
	if msg.Type != "error" || !strings.Contains(msg.Message, "message is required") {
		t.Errorf("empty message reply: %+v", msg)
	}
}

func TestHubNotice(t *testing.T) {
	srv := newTestServer(t, Config{})
	conn := dialChat(t, srv)

	// Wait for registration so the broadcast reaches the client.
	deadline := time.Now().Add(2 * time.Second)
	for srv.hub.ClientCount() != 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	srv.hub.Notice("index rebuild starting")

	msg := readChatMessage(t, conn)
	if msg.Type != "notice" || msg.Message != "index rebuild starting" {
		t.Errorf("notice = %+v", msg)
	}
}

func TestHubClientCount(t *testing.T) {
	srv := newTestServer(t, Config{})
	if srv.hub.ClientCount() != 0 {
		t.Fatalf("initial count = %d", srv.hub.ClientCount())
	}

	conn := dialChat(t, srv)

	// Registration happens on the hub goroutine; wait for it.
	deadline := time.Now().Add(2 * time.Second)
	for srv.hub.ClientCount() != 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if srv.hub.ClientCount() != 1 {
		t.Errorf("count after connect = %d, want 1", srv.hub.ClientCount())
	}

	conn.Close()
	deadline = time.Now().Add(2 * time.Second)
	for srv.hub.ClientCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if srv.hub.ClientCount() != 0 {
		t.Errorf("count after close = %d, want 0", srv.hub.ClientCount())
	}
}
