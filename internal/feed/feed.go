package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"grubgrip/internal/domain"
	"grubgrip/internal/eventbus"
)

// document is the on-disk shape of the feed file
type document struct {
	Restaurants []domain.Restaurant `json:"restaurants"`
}

// Loader reads the restaurant feed from a JSON file
type Loader struct {
	path string
}

// NewLoader creates a loader for the feed file at path
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Path returns the feed file path
func (l *Loader) Path() string { return l.path }

// Fetch reads and decodes the feed. The context is checked between
// steps so shutdown does not wait on a parse.
func (l *Loader) Fetch(ctx context.Context) ([]domain.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed file: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse feed file: %w", err)
	}

	return doc.Restaurants, nil
}

// Service runs feed fetches in the background and reports their
// progress on the event bus. It is the restaurant source for the
// browse controller.
type Service struct {
	ctx    context.Context
	bus    eventbus.EventBus
	loader *Loader

	mu       sync.Mutex
	inFlight int
}

// NewService creates a feed service. ctx bounds every fetch the
// service starts.
func NewService(ctx context.Context, bus eventbus.EventBus, loader *Loader) *Service {
	return &Service{
		ctx:    ctx,
		bus:    bus,
		loader: loader,
	}
}

// InFlight reports how many fetches are currently running
func (s *Service) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Load fetches the feed in the background and invokes deliver exactly
// once with the result. deliver runs on the fetch goroutine; callers
// that own state from a single loop marshal it back there themselves.
func (s *Service) Load(deliver func(restaurants []domain.Restaurant, err error)) {
	go func() {
		s.track(1)
		defer s.track(-1)

		s.bus.Publish(eventbus.FeedLoadStartedEvent{Path: s.loader.Path()})

		start := time.Now()
		restaurants, err := s.loader.Fetch(s.ctx)
		if err != nil {
			log.Error("feed load failed", "path", s.loader.Path(), "error", err)
			s.bus.Publish(eventbus.FeedLoadFailedEvent{Err: err})
			deliver(nil, err)
			return
		}

		elapsed := time.Since(start)
		log.Info("feed loaded", "path", s.loader.Path(), "count", len(restaurants), "elapsed", elapsed)
		s.bus.Publish(eventbus.FeedLoadCompletedEvent{Count: len(restaurants), Elapsed: elapsed})
		deliver(restaurants, nil)
	}()
}

func (s *Service) track(delta int) {
	s.mu.Lock()
	s.inFlight += delta
	s.mu.Unlock()
}
