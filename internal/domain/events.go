package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventFeedLoadStarted   EventType = "FeedLoadStarted"
	EventFeedLoadCompleted EventType = "FeedLoadCompleted"
	EventFeedLoadFailed    EventType = "FeedLoadFailed"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// FeedLoadStartedEvent is emitted when a feed fetch begins
type FeedLoadStartedEvent struct {
	Path string
}

func (e FeedLoadStartedEvent) Type() EventType { return EventFeedLoadStarted }

// FeedLoadCompletedEvent is emitted when a feed fetch finishes
type FeedLoadCompletedEvent struct {
	Count   int
	Elapsed time.Duration
}

func (e FeedLoadCompletedEvent) Type() EventType { return EventFeedLoadCompleted }

// FeedLoadFailedEvent is emitted when a feed fetch fails
type FeedLoadFailedEvent struct {
	Err error
}

func (e FeedLoadFailedEvent) Type() EventType { return EventFeedLoadFailed }
