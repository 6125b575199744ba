package browse

import (
	"sort"
	"strings"

	"grubgrip/internal/domain"
)

// Row is the minimal projection of one restaurant that the list
// surface renders. Two rows are equal iff both fields are equal.
type Row struct {
	Title    string
	Subtitle string
}

// Source asynchronously supplies the restaurant list. Load must invoke
// deliver at most once. deliver runs wherever the implementation
// chooses; hosts are responsible for serialising it with their other
// calls into the controller.
type Source interface {
	Load(deliver func(restaurants []domain.Restaurant, err error))
}

// Observer is told that the derived row list changed and should
// re-read it through RowCount and Row.
type Observer interface {
	RowsChanged()
}

// ErrorSink receives feed load failures verbatim.
type ErrorSink interface {
	LoadFailed(err error)
}

// Navigator receives the restaurant behind an activated row.
type Navigator interface {
	ShowDetail(r domain.Restaurant)
}

// Controller owns the list presentation state: the sorted master list,
// the active sort key, the active search term and the derived rows.
// All methods must be called from a single goroutine; the one
// asynchronous edge is the Source completion, which the host marshals
// onto that same goroutine.
type Controller struct {
	source  Source
	catalog Catalog

	restaurants []domain.Restaurant // master list, kept sorted by sortKey
	sortKey     Key
	searchTerm  string
	rows        []Row

	observer Observer
	errors   ErrorSink
	nav      Navigator
}

// New creates a controller with an empty list. No I/O happens until
// Initialize.
func New(source Source, catalog Catalog, defaultKey Key) *Controller {
	return &Controller{
		source:  source,
		catalog: catalog,
		sortKey: defaultKey,
	}
}

// SetObserver sets the row change listener. May be nil.
func (c *Controller) SetObserver(o Observer) { c.observer = o }

// SetErrorSink sets the load failure listener. May be nil.
func (c *Controller) SetErrorSink(s ErrorSink) { c.errors = s }

// SetNavigator sets the row activation listener. May be nil.
func (c *Controller) SetNavigator(n Navigator) { c.nav = n }

// Initialize issues one asynchronous fetch. On failure the error goes
// to the sink and no state changes; on success the result becomes the
// master list and the active sort key is applied to it. Calling
// Initialize again starts another fetch; completions apply in arrival
// order, so of two overlapping fetches the later one to finish wins.
func (c *Controller) Initialize() {
	c.source.Load(func(restaurants []domain.Restaurant, err error) {
		if err != nil {
			if c.errors != nil {
				c.errors.LoadFailed(err)
			}
			return
		}
		c.restaurants = make([]domain.Restaurant, len(restaurants))
		copy(c.restaurants, restaurants)
		c.applySort(c.sortKey)
	})
}

// SelectSort applies the sort dimension named by id. Unknown
// identifiers are stale picker values and are ignored outright.
func (c *Controller) SelectSort(id string) {
	key, ok := KeyByID(id)
	if !ok {
		return
	}
	c.applySort(key)
}

func (c *Controller) applySort(key Key) {
	c.sortKey = key
	less := c.catalog.Less(key)
	sort.Slice(c.restaurants, func(i, j int) bool {
		return less(c.restaurants[i], c.restaurants[j])
	})
	c.refresh()
}

// SetSearchTerm filters the list by case-insensitive substring match
// on the restaurant name. Whitespace-only terms clear the filter.
func (c *Controller) SetSearchTerm(term string) {
	c.searchTerm = term
	c.refresh()
}

// SearchTerm returns the active search term as typed
func (c *Controller) SearchTerm() string { return c.searchTerm }

// ActiveKey returns the active sort key
func (c *Controller) ActiveKey() Key { return c.sortKey }

// RowCount returns the number of derived rows
func (c *Controller) RowCount() int { return len(c.rows) }

// Row returns the row at index i, reporting ok=false when i is out of
// range so stale indices from the render surface stay harmless.
func (c *Controller) Row(i int) (Row, bool) {
	if i < 0 || i >= len(c.rows) {
		return Row{}, false
	}
	return c.rows[i], true
}

// SelectRow reports the restaurant behind row i to the navigator. Out
// of range indices and an absent navigator are no-ops.
func (c *Controller) SelectRow(i int) {
	if c.nav == nil {
		return
	}
	visible := c.visible()
	if i < 0 || i >= len(visible) {
		return
	}
	c.nav.ShowDetail(visible[i])
}

// visible computes the filtered view over the sorted master list. The
// master list itself is never filtered, so clearing the term restores
// every restaurant without a reload.
func (c *Controller) visible() []domain.Restaurant {
	if strings.TrimSpace(c.searchTerm) == "" {
		return c.restaurants
	}
	needle := strings.ToLower(c.searchTerm)
	var out []domain.Restaurant
	for _, r := range c.restaurants {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			out = append(out, r)
		}
	}
	return out
}

// refresh rebuilds the rows and notifies the observer only when the
// new list differs element-wise from the previous one.
func (c *Controller) refresh() {
	visible := c.visible()
	rows := make([]Row, len(visible))
	for i, r := range visible {
		rows[i] = rowFor(r, c.sortKey)
	}
	if rowsEqual(rows, c.rows) {
		return
	}
	c.rows = rows
	if c.observer != nil {
		c.observer.RowsChanged()
	}
}

// rowFor derives the render projection for one restaurant under one
// sort key: the name on top, the opening state and the labelled metric
// value underneath.
func rowFor(r domain.Restaurant, key Key) Row {
	return Row{
		Title:    r.Name,
		Subtitle: string(r.Status) + "\n" + key.Label + ": " + key.Format(key.Metric(r)),
	}
}

func rowsEqual(a, b []Row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
