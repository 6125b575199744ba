package browse

import (
	"fmt"
	"strconv"

	"grubgrip/internal/domain"
)

// Key identifies one sort dimension of the restaurant feed. ID is the
// stable identifier used by the picker and the config file, Label is
// the display name, Metric extracts the dimension's value from a
// restaurant and Format renders that value for display.
type Key struct {
	ID          string
	Label       string
	Description string
	Metric      func(r domain.Restaurant) float64
	Format      func(v float64) string
}

// The eight sort dimensions carried by the feed
var (
	BestMatch = Key{
		ID:          "bestMatch",
		Label:       "Best match",
		Description: "Sort by relevance score",
		Metric:      func(r domain.Restaurant) float64 { return r.Sorting.BestMatch },
		Format:      plain,
	}
	Newest = Key{
		ID:          "newest",
		Label:       "Newest",
		Description: "Sort by how recently the restaurant joined",
		Metric:      func(r domain.Restaurant) float64 { return r.Sorting.Newest },
		Format:      plain,
	}
	RatingAverage = Key{
		ID:          "ratingAverage",
		Label:       "Rating",
		Description: "Sort by average customer rating",
		Metric:      func(r domain.Restaurant) float64 { return r.Sorting.RatingAverage },
		Format:      plain,
	}
	Distance = Key{
		ID:          "distance",
		Label:       "Distance",
		Description: "Sort by distance in metres",
		Metric:      func(r domain.Restaurant) float64 { return float64(r.Sorting.Distance) },
		Format:      metres,
	}
	Popularity = Key{
		ID:          "popularity",
		Label:       "Popularity",
		Description: "Sort by order volume",
		Metric:      func(r domain.Restaurant) float64 { return r.Sorting.Popularity },
		Format:      plain,
	}
	AverageProductPrice = Key{
		ID:          "averageProductPrice",
		Label:       "Average price",
		Description: "Sort by average product price",
		Metric:      func(r domain.Restaurant) float64 { return float64(r.Sorting.AverageProductPrice) },
		Format:      euros,
	}
	DeliveryCosts = Key{
		ID:          "deliveryCosts",
		Label:       "Delivery costs",
		Description: "Sort by delivery costs",
		Metric:      func(r domain.Restaurant) float64 { return float64(r.Sorting.DeliveryCosts) },
		Format:      euros,
	}
	MinCost = Key{
		ID:          "minCost",
		Label:       "Minimum order",
		Description: "Sort by minimum order value",
		Metric:      func(r domain.Restaurant) float64 { return float64(r.Sorting.MinCost) },
		Format:      euros,
	}
)

// Keys returns the picker catalog in canonical order
func Keys() []Key {
	return []Key{
		BestMatch,
		Newest,
		RatingAverage,
		Distance,
		Popularity,
		AverageProductPrice,
		DeliveryCosts,
		MinCost,
	}
}

// KeyByID resolves a raw sort key identifier. Unknown identifiers
// report ok=false; callers treat those as stale picker values.
func KeyByID(id string) (Key, bool) {
	for _, k := range Keys() {
		if k.ID == id {
			return k, true
		}
	}
	return Key{}, false
}

// plain renders the metric without trailing zeros, so ratings show as
// "4.5" and match counts as "3"
func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func metres(v float64) string {
	return fmt.Sprintf("%.0f m", v)
}

// euros renders a cent amount as a euro price
func euros(v float64) string {
	return fmt.Sprintf("€ %.2f", v/100)
}

// Less orders two restaurants
type Less func(a, b domain.Restaurant) bool

// Catalog supplies a comparator per sort key. Comparators must accept
// every key in Keys().
type Catalog interface {
	Less(key Key) Less
}

type standardCatalog struct{}

// StandardCatalog orders every key ascending by its metric.
func StandardCatalog() Catalog { return standardCatalog{} }

func (standardCatalog) Less(key Key) Less {
	return func(a, b domain.Restaurant) bool {
		return key.Metric(a) < key.Metric(b)
	}
}

type openFirstCatalog struct{}

// OpenFirstCatalog ranks restaurants by opening state first (open,
// then order ahead, then closed), falling back to the key's metric.
func OpenFirstCatalog() Catalog { return openFirstCatalog{} }

func (openFirstCatalog) Less(key Key) Less {
	return func(a, b domain.Restaurant) bool {
		if pa, pb := a.Status.Priority(), b.Status.Priority(); pa != pb {
			return pa < pb
		}
		return key.Metric(a) < key.Metric(b)
	}
}

// CatalogByName resolves the catalog name used in the config file
func CatalogByName(name string) (Catalog, bool) {
	switch name {
	case "standard":
		return StandardCatalog(), true
	case "open-first":
		return OpenFirstCatalog(), true
	default:
		return nil, false
	}
}
