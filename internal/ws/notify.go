package ws

import (
	"encoding/json"
	"time"
)

type WebinarRegisteredEvent struct {
	Type            string `json:"type"`
	WebinarID       int64  `json:"webinarId"`
	Title           string `json:"title"`
	RegisteredCount int    `json:"registeredCount"`
	Timestamp       string `json:"timestamp"`
}

// NotifyWebinarRegistered broadcasts a registration to all connected
// clients. A nil hub drops the event.
func (h *Hub) NotifyWebinarRegistered(webinarID int64, title string, registeredCount int) {
	if h == nil {
		return
	}

	evt := WebinarRegisteredEvent{
		Type:            "webinar_registered",
		WebinarID:       webinarID,
		Title:           title,
		RegisteredCount: registeredCount,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
