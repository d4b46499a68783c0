package live

import (
	"encoding/json"
	"testing"
	"time"
)

func registerAndWait(t *testing.T, hub *Hub, client *Client) {
	t.Helper()
	hub.Register <- client

	deadline := time.After(time.Second)
	for {
		hub.mu.RLock()
		_, ok := hub.rooms[client.Room][client]
		hub.mu.RUnlock()
		if ok {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("client never joined room %s", client.Room)
		case <-time.After(time.Millisecond):
		}
	}
}

func TestBroadcastToRoom_DeliversToRoomMembersOnly(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	watcher := NewClient(hub, nil, "trade-desk")
	other := NewClient(hub, nil, "elsewhere")
	registerAndWait(t, hub, watcher)
	registerAndWait(t, hub, other)

	hub.BroadcastToRoom("trade-desk", EventTradeValidated, map[string]string{"status": "ok"})

	select {
	case raw := <-watcher.send:
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("broadcast was not valid JSON: %v", err)
		}
		if msg.Type != EventTradeValidated {
			t.Errorf("message type = %q, want %q", msg.Type, EventTradeValidated)
		}
		if msg.RoomID != "trade-desk" {
			t.Errorf("room id = %q, want trade-desk", msg.RoomID)
		}
	case <-time.After(time.Second):
		t.Fatal("room member never received the broadcast")
	}

	select {
	case <-other.send:
		t.Fatal("client outside the room received the broadcast")
	default:
	}
}

func TestUnregister_ClosesSendChannelOnce(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(hub, nil, "trade-desk")
	registerAndWait(t, hub, client)

	hub.Unregister <- client

	deadline := time.After(time.Second)
	for {
		client.mu.Lock()
		closed := client.closed
		client.mu.Unlock()
		if closed {
			break
		}
		select {
		case <-deadline:
			t.Fatal("client send channel never closed")
		case <-time.After(time.Millisecond):
		}
	}

	// A second unregister for the same client must not panic on a
	// double close.
	hub.Unregister <- client

	hub.BroadcastToRoom("trade-desk", EventTradeExecuted, nil)
}
