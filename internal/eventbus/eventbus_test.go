package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"grubgrip/internal/domain"
)

// collect subscribes to one event type and records everything it receives.
func collect(t *testing.T, b EventBus, et EventType) (*sync.Mutex, *[]DomainEvent, func()) {
	t.Helper()
	var mu sync.Mutex
	var got []DomainEvent
	unsub := b.Subscribe(et, func(e DomainEvent) {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
	})
	return &mu, &got, unsub
}

func waitForCount(t *testing.T, mu *sync.Mutex, got *[]DomainEvent, want int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := len(*got)
		mu.Unlock()
		if n >= want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d events, got %d", want, n)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestPublishReachesSubscriber(t *testing.T) {
	t.Parallel()

	b := New()
	defer b.Close()

	mu, got, _ := collect(t, b, domain.EventFeedLoadStarted)

	b.Publish(domain.FeedLoadStartedEvent{Path: "feed.json"})
	waitForCount(t, mu, got, 1)

	mu.Lock()
	defer mu.Unlock()
	started, ok := (*got)[0].(domain.FeedLoadStartedEvent)
	require.True(t, ok, "subscriber should receive the concrete event type")
	require.Equal(t, "feed.json", started.Path)
}

func TestPublishSkipsOtherEventTypes(t *testing.T) {
	t.Parallel()

	b := New()
	defer b.Close()

	mu, got, _ := collect(t, b, domain.EventFeedLoadFailed)
	cmu, completed, _ := collect(t, b, domain.EventFeedLoadCompleted)

	b.Publish(domain.FeedLoadCompletedEvent{Count: 3})
	waitForCount(t, cmu, completed, 1)

	mu.Lock()
	defer mu.Unlock()
	require.Empty(t, *got, "failed-load subscriber should not see completed events")
}

func TestAllSubscribersReceiveEvent(t *testing.T) {
	t.Parallel()

	b := New()
	defer b.Close()

	amu, a, _ := collect(t, b, domain.EventFeedLoadCompleted)
	bmu, bb, _ := collect(t, b, domain.EventFeedLoadCompleted)

	b.Publish(domain.FeedLoadCompletedEvent{Count: 7})
	waitForCount(t, amu, a, 1)
	waitForCount(t, bmu, bb, 1)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()

	b := New()
	defer b.Close()

	mu, got, unsub := collect(t, b, domain.EventFeedLoadCompleted)
	kmu, kept, _ := collect(t, b, domain.EventFeedLoadCompleted)

	b.Publish(domain.FeedLoadCompletedEvent{Count: 1})
	waitForCount(t, mu, got, 1)
	waitForCount(t, kmu, kept, 1)

	unsub()
	b.Publish(domain.FeedLoadCompletedEvent{Count: 2})
	waitForCount(t, kmu, kept, 2)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, *got, 1, "unsubscribed handler should not see later events")
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	t.Parallel()

	b := New()
	defer b.Close()

	b.Subscribe(domain.EventFeedLoadCompleted, func(DomainEvent) {
		panic("handler blew up")
	})
	mu, got, _ := collect(t, b, domain.EventFeedLoadCompleted)

	b.Publish(domain.FeedLoadCompletedEvent{Count: 1})
	b.Publish(domain.FeedLoadCompletedEvent{Count: 2})
	waitForCount(t, mu, got, 2)
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	b := New()
	b.Close()
	b.Close()
}

func TestCloseWaitsForInFlightHandlers(t *testing.T) {
	t.Parallel()

	b := New()

	started := make(chan struct{})
	finished := make(chan struct{})
	b.Subscribe(domain.EventFeedLoadCompleted, func(DomainEvent) {
		close(started)
		time.Sleep(50 * time.Millisecond)
		close(finished)
	})

	b.Publish(domain.FeedLoadCompletedEvent{Count: 1})
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the handler to start")
	}

	b.Close()

	select {
	case <-finished:
	default:
		require.Fail(t, "Close returned while a handler was still running")
	}
}
