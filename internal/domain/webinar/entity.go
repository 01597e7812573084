package webinar

import "time"

type Webinar struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	SpeakerName     string    `json:"speakerName"`
	SpeakerTitle    string    `json:"speakerTitle"`
	Date            time.Time `json:"date"`
	RegisteredUsers []int64   `json:"registeredUsers"`
}

// Registered reports whether userID is already on the attendee list.
func (w Webinar) Registered(userID int64) bool {
	for _, id := range w.RegisteredUsers {
		if id == userID {
			return true
		}
	}
	return false
}
