package models

import "time"

// FeedEvent is one entry of the USGS significant-earthquakes Atom feed
type FeedEvent struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Summary   string    `json:"summary,omitempty"`
	Published time.Time `json:"published"`
}
