package domain

// Restaurant represents one restaurant in the delivery feed
type Restaurant struct {
	Name    string        `json:"name"`
	Status  OpeningState  `json:"status"`
	Sorting SortingValues `json:"sortingValues"`
}

// OpeningState is the feed's opening status for a restaurant. The feed
// ships it as a free-form string; unknown values are carried through
// unchanged and only lose their ranking.
type OpeningState string

// Opening states known to the feed
const (
	StateOpen       OpeningState = "open"
	StateOrderAhead OpeningState = "order ahead"
	StateClosed     OpeningState = "closed"
)

// Priority returns the presentation rank of the state: open before
// order ahead before closed, anything unrecognised last.
func (s OpeningState) Priority() int {
	switch s {
	case StateOpen:
		return 0
	case StateOrderAhead:
		return 1
	case StateClosed:
		return 2
	default:
		return 3
	}
}

// SortingValues carries one metric per sort dimension, straight from
// the feed. Distance is in metres; the money metrics are in euro cents.
type SortingValues struct {
	BestMatch           float64 `json:"bestMatch"`
	Newest              float64 `json:"newest"`
	RatingAverage       float64 `json:"ratingAverage"`
	Distance            int     `json:"distance"`
	Popularity          float64 `json:"popularity"`
	AverageProductPrice int     `json:"averageProductPrice"`
	DeliveryCosts       int     `json:"deliveryCosts"`
	MinCost             int     `json:"minCost"`
}
