package ui

import (
	"time"

	"grubgrip/internal/domain"
	"grubgrip/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer for animations
type tickMsg time.Time

// feedDeliveredMsg carries a finished fetch back onto the update loop.
// Handling it runs the pending completion there, so the controller only
// ever mutates on the single update goroutine.
type feedDeliveredMsg struct {
	restaurants []domain.Restaurant
	err         error
	deliver     func(restaurants []domain.Restaurant, err error)
}

// helpPagerMsg contains the result of showing help in the pager
type helpPagerMsg struct {
	err error
}
