// Package domain holds the listing model and the filter, sort and paginate
// pipeline behind the listings grid. Everything here is pure and safe to
// call from concurrent requests over a shared snapshot.
package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"estate_portal_backend/platform/apperr"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// PropertyType is the listing category.
type PropertyType string

const (
	PropertyTypeResidential PropertyType = "Residential"
	PropertyTypeCommercial  PropertyType = "Commercial"
)

// PropertyTypes lists the accepted categories in display order.
var PropertyTypes = []PropertyType{PropertyTypeResidential, PropertyTypeCommercial}

// PossessionStatus describes how soon a buyer can move in.
type PossessionStatus string

const (
	PossessionReadyToMove       PossessionStatus = "Ready to Move"
	PossessionUnderConstruction PossessionStatus = "Under Construction"
	PossessionNewLaunch         PossessionStatus = "New Launch"
	PossessionResale            PossessionStatus = "Resale"
)

// PossessionStatuses lists the accepted possession statuses in display order.
var PossessionStatuses = []PossessionStatus{
	PossessionReadyToMove,
	PossessionUnderConstruction,
	PossessionNewLaunch,
	PossessionResale,
}

// Status is the publication state. Only active listings are browsable.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusSold     Status = "sold"
	StatusInactive Status = "inactive"
)

// Statuses lists every publication state.
var Statuses = []Status{StatusDraft, StatusActive, StatusSold, StatusInactive}

type Location struct {
	City    string `json:"city"`
	Area    string `json:"area"`
	SubArea string `json:"subArea,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

// PriceRange is a band in whole rupees.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type Specifications struct {
	AreaSqFt  int `json:"area"`
	Bedrooms  int `json:"bedrooms,omitempty"`
	Bathrooms int `json:"bathrooms,omitempty"`
}

type FloorPlan struct {
	Type     string `json:"type"`
	AreaSqFt int    `json:"area"`
	Price    int64  `json:"price"`
}

type Landmark struct {
	Name     string `json:"name"`
	Distance string `json:"distance"`
}

// Listing is one property record.
type Listing struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	BuilderID        uuid.UUID        `json:"builderId"`
	BuilderName      string           `json:"builderName"`
	Location         Location         `json:"location"`
	PriceRange       PriceRange       `json:"priceRange"`
	PropertyType     PropertyType     `json:"propertyType"`
	Configurations   []string         `json:"configurations"`
	PossessionDate   Date             `json:"possessionDate"`
	PossessionStatus PossessionStatus `json:"possessionStatus"`
	ReraID           string           `json:"reraId,omitempty"`
	Amenities        []string         `json:"amenities"`
	Images           []string         `json:"images"`
	Brochure         string           `json:"brochure,omitempty"`
	ContactEmail     string           `json:"contactEmail,omitempty"`
	Description      string           `json:"description,omitempty"`
	Featured         bool             `json:"featured"`
	Status           Status           `json:"status"`
	Specifications   Specifications   `json:"specifications"`
	TotalUnits       int              `json:"totalUnits"`
	AvailableUnits   int              `json:"availableUnits"`
	FloorPlans       []FloorPlan      `json:"floorPlans"`
	NearbyLandmarks  []Landmark       `json:"nearbyLandmarks"`
	Views            int64            `json:"views"`
	Inquiries        int64            `json:"inquiries"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// fold returns the case-folded form used for every case-insensitive
// comparison in this package. A Caser holds state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// DedupeLabels trims labels and drops empty ones and repeats under case
// folding. The first spelling wins and order is preserved.
func DedupeLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		trimmed := strings.TrimSpace(label)
		key := fold(trimmed)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// Normalize trims free-text fields and deduplicates amenities and
// configurations. Nil slices become empty so JSON never carries null.
func (l *Listing) Normalize() {
	l.Name = strings.TrimSpace(l.Name)
	l.BuilderName = strings.TrimSpace(l.BuilderName)
	l.Location.City = strings.TrimSpace(l.Location.City)
	l.Location.Area = strings.TrimSpace(l.Location.Area)
	l.Location.SubArea = strings.TrimSpace(l.Location.SubArea)
	l.Amenities = DedupeLabels(l.Amenities)
	l.Configurations = DedupeLabels(l.Configurations)
	if l.Images == nil {
		l.Images = []string{}
	}
	if l.FloorPlans == nil {
		l.FloorPlans = []FloorPlan{}
	}
	if l.NearbyLandmarks == nil {
		l.NearbyLandmarks = []Landmark{}
	}
	if l.Status == "" {
		l.Status = StatusDraft
	}
}

// Validate checks the listing invariants and reports every violated field.
func (l *Listing) Validate() error {
	problems := map[string]string{}

	if l.Name == "" {
		problems["name"] = "required"
	}
	if l.Location.City == "" {
		problems["location.city"] = "required"
	}
	if l.PriceRange.Min < 0 || l.PriceRange.Max < 0 {
		problems["priceRange"] = "must not be negative"
	} else if l.PriceRange.Min > l.PriceRange.Max {
		problems["priceRange"] = "min must not exceed max"
	}
	if !slices.Contains(PropertyTypes, l.PropertyType) {
		problems["propertyType"] = fmt.Sprintf("must be one of %v", PropertyTypes)
	}
	if l.PossessionStatus != "" && !slices.Contains(PossessionStatuses, l.PossessionStatus) {
		problems["possessionStatus"] = "unknown possession status"
	}
	if !slices.Contains(Statuses, l.Status) {
		problems["status"] = "unknown status"
	}
	if l.TotalUnits < 0 || l.AvailableUnits < 0 {
		problems["units"] = "must not be negative"
	} else if l.AvailableUnits > l.TotalUnits {
		problems["availableUnits"] = "must not exceed totalUnits"
	}
	if len(DedupeLabels(l.Amenities)) != len(l.Amenities) {
		problems["amenities"] = "duplicate or empty labels"
	}

	if len(problems) > 0 {
		return apperr.Validation("invalid listing").WithCode("INVALID_LISTING").WithDetails(problems)
	}
	return nil
}

// CanTransition reports whether a listing may move from one status to another.
// Sold is terminal.
func CanTransition(from, to Status) bool {
	if !slices.Contains(Statuses, to) {
		return false
	}
	return from != StatusSold || to == StatusSold
}

// Date is a calendar date without a time of day, encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = time.DateOnly

// NewDate truncates t to its calendar date in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD. The empty string yields the zero Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON overrides the promoted time.Time encoding.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// IsAfterDay reports whether the date falls strictly after the calendar day of t.
func (d Date) IsAfterDay(t time.Time) bool {
	if d.IsZero() {
		return false
	}
	y, m, day := t.Date()
	return d.Time.After(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
}
