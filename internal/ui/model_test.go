package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"grubgrip/internal/browse"
	"grubgrip/internal/config"
	"grubgrip/internal/domain"
	"grubgrip/internal/eventbus"
)

// syncSource delivers inline. With no program attached the loop source
// passes the completion straight through, so loads finish before Init
// returns.
type syncSource struct {
	restaurants []domain.Restaurant
	err         error
	loads       int
}

func (s *syncSource) Load(deliver func(restaurants []domain.Restaurant, err error)) {
	s.loads++
	deliver(s.restaurants, s.err)
}

// fakeConfigService records saves
type fakeConfigService struct {
	saved []*config.Config
}

func (f *fakeConfigService) Load() (*config.Config, error) { return config.DefaultConfig(), nil }
func (f *fakeConfigService) Save(cfg *config.Config) error {
	f.saved = append(f.saved, cfg)
	return nil
}
func (f *fakeConfigService) LoadFromPath(string) (*config.Config, error) {
	return config.DefaultConfig(), nil
}
func (f *fakeConfigService) SaveToPath(*config.Config, string) error { return nil }

func feedFixture() []domain.Restaurant {
	return []domain.Restaurant{
		{Name: "Tanoshii Sushi", Status: domain.StateOpen, Sorting: domain.SortingValues{
			BestMatch: 0, Newest: 96, RatingAverage: 4.5, Distance: 1190,
			Popularity: 17, AverageProductPrice: 1536, DeliveryCosts: 200, MinCost: 1000,
		}},
		{Name: "Tandoori Express", Status: domain.StateClosed, Sorting: domain.SortingValues{
			BestMatch: 1, Newest: 266, RatingAverage: 4.5, Distance: 2308,
			Popularity: 123, AverageProductPrice: 1146, DeliveryCosts: 150, MinCost: 1300,
		}},
		{Name: "Royal Thai", Status: domain.StateOrderAhead, Sorting: domain.SortingValues{
			BestMatch: 2, Newest: 133, RatingAverage: 4.7, Distance: 580,
			Popularity: 48, AverageProductPrice: 1492, DeliveryCosts: 150, MinCost: 2500,
		}},
	}
}

func newTestModel(src browse.Source) *Model {
	m := NewModel(config.DefaultConfig(), nil, src, browse.StandardCatalog(), browse.BestMatch)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// press feeds key presses through Update
func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestModelShowsLoadedRowsSortedByDefault(t *testing.T) {
	t.Parallel()

	m := newTestModel(&syncSource{restaurants: feedFixture()})

	require.Equal(t, 3, m.Browser().RowCount())

	view := m.View()
	require.Contains(t, view, "Tanoshii Sushi")
	require.Contains(t, view, "Best match")

	sushi := strings.Index(view, "Tanoshii Sushi")
	tandoori := strings.Index(view, "Tandoori Express")
	thai := strings.Index(view, "Royal Thai")
	require.Less(t, sushi, tandoori, "rows should appear in sort order")
	require.Less(t, tandoori, thai, "rows should appear in sort order")
}

func TestModelLoadFailureShowsError(t *testing.T) {
	t.Parallel()

	m := newTestModel(&syncSource{err: errors.New("feed unreachable")})

	require.Equal(t, 0, m.Browser().RowCount())
	require.Contains(t, m.View(), "Error: feed unreachable")
}

func TestSearchModeFiltersLive(t *testing.T) {
	t.Parallel()

	m := newTestModel(&syncSource{restaurants: feedFixture()})

	press(m, "/", "sushi")
	view := m.View()
	require.Contains(t, view, "Tanoshii Sushi")
	require.NotContains(t, view, "Tandoori Express")
	require.Equal(t, "sushi", m.Browser().SearchTerm())

	press(m, "esc")
	require.Empty(t, m.Browser().SearchTerm(), "esc should restore the previous term")
	require.Equal(t, 3, m.Browser().RowCount())
}

func TestSearchModeEnterKeepsFilter(t *testing.T) {
	t.Parallel()

	m := newTestModel(&syncSource{restaurants: feedFixture()})

	press(m, "/", "oo", "enter")
	require.Equal(t, "oo", m.Browser().SearchTerm())
	require.Equal(t, 1, m.Browser().RowCount())
	require.Contains(t, m.View(), "[Search: oo]")

	// Back in normal mode, j moves the cursor instead of typing
	press(m, "j")
	require.Equal(t, "oo", m.Browser().SearchTerm())
}

func TestSortModeAppliesImmediatelyAndEscRestores(t *testing.T) {
	t.Parallel()

	m := newTestModel(&syncSource{restaurants: feedFixture()})

	press(m, "s")
	require.Contains(t, m.View(), "Sort by: Best match - Sort by relevance score")

	press(m, "j")
	require.Equal(t, "newest", m.Browser().ActiveKey().ID, "navigating should apply at once")

	press(m, "j", "j")
	require.Equal(t, "distance", m.Browser().ActiveKey().ID)
	require.Contains(t, m.View(), "Distance: 580 m")

	press(m, "esc")
	require.Equal(t, "bestMatch", m.Browser().ActiveKey().ID, "esc should restore the original key")
}

func TestSortModeEnterAccepts(t *testing.T) {
	t.Parallel()

	m := newTestModel(&syncSource{restaurants: feedFixture()})

	press(m, "s", "j", "enter")
	require.Equal(t, "newest", m.Browser().ActiveKey().ID)
	require.Contains(t, m.View(), "Sort: Newest")
}

func TestSortModeWrapsAround(t *testing.T) {
	t.Parallel()

	m := newTestModel(&syncSource{restaurants: feedFixture()})

	press(m, "s", "up")
	require.Equal(t, "minCost", m.Browser().ActiveKey().ID, "up from the first key wraps to the last")

	press(m, "esc")
	require.Equal(t, "bestMatch", m.Browser().ActiveKey().ID)
}

func TestDetailPopupOnEnter(t *testing.T) {
	t.Parallel()

	m := newTestModel(&syncSource{restaurants: feedFixture()})

	press(m, "enter")
	view := m.View()
	require.Contains(t, view, "Tanoshii Sushi")
	require.Contains(t, view, "Minimum order:")
	require.Contains(t, view, "€ 10.00")
	require.NotContains(t, view, "Tandoori Express", "the popup replaces the list")

	press(m, "esc")
	require.Contains(t, m.View(), "Tandoori Express")
}

func TestReloadKeyIssuesAnotherFetch(t *testing.T) {
	t.Parallel()

	src := &syncSource{restaurants: feedFixture()}
	m := newTestModel(src)
	require.Equal(t, 1, src.loads)

	press(m, "R")
	require.Equal(t, 2, src.loads)
	require.Equal(t, 3, m.Browser().RowCount())
}

func TestCursorStaysInsideRows(t *testing.T) {
	t.Parallel()

	m := newTestModel(&syncSource{restaurants: feedFixture()})

	press(m, "G")
	require.Equal(t, 2, m.cursor)

	press(m, "/", "sushi", "enter")
	require.Equal(t, 0, m.cursor, "the cursor should clamp when rows shrink")

	press(m, "up")
	require.Equal(t, 0, m.cursor)
}

func TestHelpPopupToggles(t *testing.T) {
	t.Parallel()

	m := newTestModel(&syncSource{restaurants: feedFixture()})

	press(m, "?")
	require.Contains(t, m.View(), "GrubGrip Help")

	press(m, "?")
	require.NotContains(t, m.View(), "GrubGrip Help")
}

func TestLoadingIndicatorFollowsEvents(t *testing.T) {
	t.Parallel()

	m := newTestModel(&syncSource{restaurants: feedFixture()})

	_, cmd := m.Update(EventMsg{Event: eventbus.FeedLoadStartedEvent{Path: "feed.json"}})
	require.NotNil(t, cmd, "the spinner tick should start with the load")
	require.Contains(t, m.View(), "Loading")

	m.Update(EventMsg{Event: eventbus.FeedLoadCompletedEvent{Count: 3, Elapsed: 12 * time.Millisecond}})
	require.Contains(t, m.View(), "Loaded 3 restaurants in 12ms")
	require.Zero(t, m.loading)
}

func TestQuitSavesChangedSortPreference(t *testing.T) {
	t.Parallel()

	svc := &fakeConfigService{}
	cfg := config.DefaultConfig()
	m := NewModel(cfg, svc, &syncSource{restaurants: feedFixture()}, browse.StandardCatalog(), browse.BestMatch)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	press(m, "s", "j", "enter", "q")
	require.Len(t, svc.saved, 1, "quitting with a changed key should save once")
	require.Equal(t, "newest", cfg.DefaultSort)
}

func TestQuitWithUnchangedSortDoesNotSave(t *testing.T) {
	t.Parallel()

	svc := &fakeConfigService{}
	m := NewModel(config.DefaultConfig(), svc, &syncSource{restaurants: feedFixture()}, browse.StandardCatalog(), browse.BestMatch)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	press(m, "q")
	require.Empty(t, svc.saved)
}
