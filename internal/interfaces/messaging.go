package interfaces

import (
	"context"
	"time"
)

// StatusUpdateMessage is published when an accepted scan flips a status
// flag. Advisory only: consumers display it, nothing synchronizes on it.
type StatusUpdateMessage struct {
	Key       string    `json:"key"`
	SOP       int       `json:"sop"`
	Rating    string    `json:"rating"`
	Flag      string    `json:"flag"`
	Dispatch  string    `json:"dispatch,omitempty"`
	User      string    `json:"user"`
	Area      string    `json:"area"`
	SubArea   string    `json:"sub_area"`
	Timestamp time.Time `json:"timestamp"`
}

type MessagePublisher interface {
	PublishStatusUpdate(ctx context.Context, msg StatusUpdateMessage) error
}
