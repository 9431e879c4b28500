package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var bhkPattern = regexp.MustCompile(`^(\d+)\s*(\+)?\s*bhk$`)

// parseBHK extracts the bedroom count from labels such as "3 BHK" or the
// open-ended option "5+ BHK".
func parseBHK(label string) (bedrooms int, orMore bool, ok bool) {
	m := bhkPattern.FindStringSubmatch(fold(label))
	if m == nil {
		return 0, false, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false, false
	}
	return n, m[2] == "+", true
}

// IsBHKLabel reports whether label is a bedroom configuration label.
func IsBHKLabel(label string) bool {
	_, _, ok := parseBHK(label)
	return ok
}

// Matches reports whether l satisfies every set dimension of c.
func Matches(l Listing, c Criteria) bool {
	return matchesSearch(l, c.SearchQuery) &&
		matchesLocation(l, c.Location) &&
		matchesPropertyType(l, c.PropertyType) &&
		matchesPossession(l, c.Possession) &&
		matchesBuilder(l, c.Builder) &&
		matchesBHK(l, c.BHK) &&
		matchesPrice(l, c.PriceRange) &&
		matchesAmenities(l, c.Amenities)
}

// Filter returns the listings matching c in their original order.
func Filter(listings []Listing, c Criteria) []Listing {
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if Matches(l, c) {
			out = append(out, l)
		}
	}
	return out
}

func contains(haystack, needle string) bool {
	return strings.Contains(fold(haystack), needle)
}

func matchesSearch(l Listing, query string) bool {
	q := fold(query)
	if q == "" {
		return true
	}
	return contains(l.Name, q) ||
		contains(l.Location.Area, q) ||
		contains(l.Location.City, q) ||
		contains(l.BuilderName, q)
}

func matchesLocation(l Listing, location string) bool {
	q := fold(location)
	if q == "" {
		return true
	}
	return contains(l.Location.City, q) || contains(l.Location.Area, q)
}

func matchesPropertyType(l Listing, propertyType string) bool {
	q := fold(propertyType)
	return q == "" || fold(string(l.PropertyType)) == q
}

// matchesPossession accepts either a possession status ("Ready to Move") or
// a fragment of the possession date ("2026" or "2026-12").
func matchesPossession(l Listing, possession string) bool {
	q := fold(possession)
	if q == "" {
		return true
	}
	if fold(string(l.PossessionStatus)) == q {
		return true
	}
	date := l.PossessionDate.String()
	return date != "" && strings.Contains(date, q)
}

func matchesBuilder(l Listing, builder string) bool {
	q := fold(builder)
	if q == "" {
		return true
	}
	return contains(l.BuilderName, q) || strings.EqualFold(l.BuilderID.String(), strings.TrimSpace(builder))
}

func matchesBHK(l Listing, bhk string) bool {
	q := fold(bhk)
	if q == "" {
		return true
	}

	want, orMore, isBHK := parseBHK(bhk)
	for _, config := range l.Configurations {
		if fold(config) == q {
			return true
		}
		if !isBHK || !orMore {
			continue
		}
		if have, _, ok := parseBHK(config); ok && have >= want {
			return true
		}
	}
	return false
}

// matchesPrice requires the whole listing band to sit inside the bound.
// A listing that only overlaps the bound does not match.
func matchesPrice(l Listing, bound *PriceBound) bool {
	if bound == nil {
		return true
	}
	return l.PriceRange.Min >= bound.Min && l.PriceRange.Max <= bound.Max
}

func matchesAmenities(l Listing, amenities []string) bool {
	if len(amenities) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(l.Amenities))
	for _, a := range l.Amenities {
		have[fold(a)] = struct{}{}
	}
	for _, want := range amenities {
		key := fold(want)
		if key == "" {
			continue
		}
		if _, ok := have[key]; !ok {
			return false
		}
	}
	return true
}
