package ws

import (
	"io"
	"log"
	"strings"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	go hub.Run()
	defer hub.Stop()

	client := NewClient(hub, nil)
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.NotifyWebinarRegistered(7, "Careers 101", 3)
	waitFor(t, func() bool { return len(client.send) == 1 })

	msg := string(<-client.send)
	if want := `"type":"webinar_registered"`; !strings.Contains(msg, want) {
		t.Fatalf("expected %s in %s", want, msg)
	}
	if want := `"webinarId":7`; !strings.Contains(msg, want) {
		t.Fatalf("expected %s in %s", want, msg)
	}
}

func TestHubStopDisconnectsClients(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	go hub.Run()

	client := NewClient(hub, nil)
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Stop()
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	// The client's send channel is closed so its write pump exits.
	select {
	case _, ok := <-client.send:
		if ok {
			t.Fatalf("expected closed send channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("send channel not closed after stop")
	}

	// A second Stop is a no-op.
	hub.Stop()

	// Broadcasting after stop must not block or panic.
	hub.Broadcast([]byte("late"))
}

func TestNilHubIsSafe(t *testing.T) {
	var hub *Hub
	hub.Register(nil)
	hub.Broadcast([]byte("x"))
	hub.Stop()
	hub.NotifyWebinarRegistered(1, "x", 1)
	if hub.ClientCount() != 0 {
		t.Fatalf("nil hub reports clients")
	}
}
