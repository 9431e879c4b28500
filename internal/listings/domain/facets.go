package domain

import (
	"cmp"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// BuilderFacet identifies a builder in the filter options.
type BuilderFacet struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Count int       `json:"count"`
}

// PriceBucket is one of the fixed price options.
type PriceBucket struct {
	Label string `json:"label"`
	Min   int64  `json:"min"`
	Max   int64  `json:"max"`
}

// PriceBuckets are the price options offered by the filter form.
var PriceBuckets = []PriceBucket{
	{Label: "Under ₹50L", Min: 0, Max: 50_00_000},
	{Label: "₹50L - ₹1Cr", Min: 50_00_000, Max: 1_00_00_000},
	{Label: "₹1Cr - ₹2Cr", Min: 1_00_00_000, Max: 2_00_00_000},
	{Label: "₹2Cr - ₹5Cr", Min: 2_00_00_000, Max: 5_00_00_000},
	{Label: "Above ₹5Cr", Min: 5_00_00_000, Max: 99_99_99_999},
}

// Facets are the option lists the filter form renders for a snapshot.
type Facets struct {
	Cities             []string           `json:"cities"`
	Areas              []string           `json:"areas"`
	Builders           []BuilderFacet     `json:"builders"`
	PropertyTypes      []PropertyType     `json:"propertyTypes"`
	Configurations     []string           `json:"configurations"`
	Amenities          []string           `json:"amenities"`
	PossessionStatuses []PossessionStatus `json:"possessionStatuses"`
	PriceBuckets       []PriceBucket      `json:"priceBuckets"`
	SortKeys           []SortKey          `json:"sortKeys"`
}

// BuildFacets collects the distinct values present in listings.
func BuildFacets(listings []Listing) Facets {
	var cities, areas, configs, amenities []string
	builders := map[uuid.UUID]*BuilderFacet{}
	types := map[PropertyType]bool{}

	for _, l := range listings {
		cities = append(cities, l.Location.City)
		areas = append(areas, l.Location.Area)
		configs = append(configs, l.Configurations...)
		amenities = append(amenities, l.Amenities...)
		types[l.PropertyType] = true

		b, ok := builders[l.BuilderID]
		if !ok {
			b = &BuilderFacet{ID: l.BuilderID, Name: l.BuilderName}
			builders[l.BuilderID] = b
		}
		b.Count++
	}

	builderList := make([]BuilderFacet, 0, len(builders))
	for _, b := range builders {
		builderList = append(builderList, *b)
	}
	slices.SortFunc(builderList, func(a, b BuilderFacet) int {
		if c := strings.Compare(fold(a.Name), fold(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	typeList := make([]PropertyType, 0, len(types))
	for _, t := range PropertyTypes {
		if types[t] {
			typeList = append(typeList, t)
		}
	}

	configList := DedupeLabels(configs)
	slices.SortFunc(configList, compareConfigurations)

	return Facets{
		Cities:             sortedLabels(cities),
		Areas:              sortedLabels(areas),
		Builders:           builderList,
		PropertyTypes:      typeList,
		Configurations:     configList,
		Amenities:          sortedLabels(amenities),
		PossessionStatuses: PossessionStatuses,
		PriceBuckets:       PriceBuckets,
		SortKeys:           SortKeys,
	}
}

func sortedLabels(values []string) []string {
	out := DedupeLabels(values)
	slices.SortFunc(out, func(a, b string) int {
		return strings.Compare(fold(a), fold(b))
	})
	return out
}

// compareConfigurations orders BHK labels by bedroom count ahead of other
// labels, which sort alphabetically.
func compareConfigurations(a, b string) int {
	na, _, okA := parseBHK(a)
	nb, _, okB := parseBHK(b)
	switch {
	case okA && okB:
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
	case okA:
		return -1
	case okB:
		return 1
	}
	return strings.Compare(fold(a), fold(b))
}
