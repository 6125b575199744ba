package ui

import (
	"grubgrip/internal/browse"
	"grubgrip/internal/domain"
)

// loopSource wraps the real feed source so completions re-enter the
// program as messages. The fetch itself runs on the source's own
// goroutine; the completion callback always runs on the update loop.
type loopSource struct {
	inner browse.Source
	model *Model
}

func (s *loopSource) Load(deliver func(restaurants []domain.Restaurant, err error)) {
	s.inner.Load(func(restaurants []domain.Restaurant, err error) {
		if p := s.model.program; p != nil {
			p.Send(feedDeliveredMsg{restaurants: restaurants, err: err, deliver: deliver})
			return
		}
		// No running program, so the caller is already on the loop.
		// Tests drive Update directly and take this path.
		deliver(restaurants, err)
	})
}
