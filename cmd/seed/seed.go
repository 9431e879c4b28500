package main

import (
	"fmt"
	"io"
	"time"

	"estate_portal_backend/internal/listings/domain"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// seedNamespace keeps generated IDs stable across runs so reseeding skips
// rows that already exist.
var seedNamespace = uuid.MustParse("6f1c2b7e-9a51-4d3e-8c0a-2f4b5e6d7a81")

type seedFile struct {
	Listings []seedListing `yaml:"listings"`
}

type seedListing struct {
	Key              string            `yaml:"key"`
	Name             string            `yaml:"name"`
	Builder          string            `yaml:"builder"`
	BuilderName      string            `yaml:"builderName"`
	ContactEmail     string            `yaml:"contactEmail"`
	Location         seedLocation      `yaml:"location"`
	PriceMin         int64             `yaml:"priceMin"`
	PriceMax         int64             `yaml:"priceMax"`
	PropertyType     string            `yaml:"propertyType"`
	Configurations   []string          `yaml:"configurations"`
	PossessionDate   string            `yaml:"possessionDate"`
	PossessionStatus string            `yaml:"possessionStatus"`
	ReraID           string            `yaml:"reraId"`
	Amenities        []string          `yaml:"amenities"`
	Images           []string          `yaml:"images"`
	Description      string            `yaml:"description"`
	Featured         bool              `yaml:"featured"`
	TotalUnits       int               `yaml:"totalUnits"`
	AvailableUnits   int               `yaml:"availableUnits"`
	FloorPlans       []seedFloorPlan   `yaml:"floorPlans"`
	Landmarks        []domain.Landmark `yaml:"landmarks"`
	Views            int64             `yaml:"views"`
	Inquiries        int64             `yaml:"inquiries"`
	CreatedAt        string            `yaml:"createdAt"`
}

type seedLocation struct {
	City    string `yaml:"city"`
	Area    string `yaml:"area"`
	SubArea string `yaml:"subArea"`
	Pincode string `yaml:"pincode"`
}

type seedFloorPlan struct {
	Type  string `yaml:"type"`
	Area  int    `yaml:"area"`
	Price int64  `yaml:"price"`
}

// BuilderID maps a builder key from the seed file to its stable ID.
func BuilderID(key string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte("builder:"+key))
}

// parseSeed decodes a seed file into validated, active listings.
func parseSeed(r io.Reader) ([]domain.Listing, error) {
	var file seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	out := make([]domain.Listing, 0, len(file.Listings))
	for i, s := range file.Listings {
		l, err := s.toListing()
		if err != nil {
			return nil, fmt.Errorf("listing %d (%s): %w", i, s.Key, err)
		}
		out = append(out, l)
	}
	return out, nil
}

func (s seedListing) toListing() (domain.Listing, error) {
	if s.Key == "" {
		return domain.Listing{}, fmt.Errorf("key is required")
	}
	possession, err := domain.ParseDate(s.PossessionDate)
	if err != nil {
		return domain.Listing{}, err
	}
	var createdAt time.Time
	if s.CreatedAt != "" {
		if createdAt, err = time.Parse(time.RFC3339, s.CreatedAt); err != nil {
			return domain.Listing{}, fmt.Errorf("parse createdAt: %w", err)
		}
	}

	l := domain.Listing{
		ID:               uuid.NewSHA1(seedNamespace, []byte("listing:"+s.Key)),
		Name:             s.Name,
		BuilderID:        BuilderID(s.Builder),
		BuilderName:      s.BuilderName,
		ContactEmail:     s.ContactEmail,
		Location:         domain.Location(s.Location),
		PriceRange:       domain.PriceRange{Min: s.PriceMin, Max: s.PriceMax},
		PropertyType:     domain.PropertyType(s.PropertyType),
		Configurations:   s.Configurations,
		PossessionDate:   possession,
		PossessionStatus: domain.PossessionStatus(s.PossessionStatus),
		ReraID:           s.ReraID,
		Amenities:        s.Amenities,
		Images:           s.Images,
		Description:      s.Description,
		Featured:         s.Featured,
		Status:           domain.StatusActive,
		TotalUnits:       s.TotalUnits,
		AvailableUnits:   s.AvailableUnits,
		NearbyLandmarks:  s.Landmarks,
		Views:            s.Views,
		Inquiries:        s.Inquiries,
		CreatedAt:        createdAt,
	}
	for _, fp := range s.FloorPlans {
		l.FloorPlans = append(l.FloorPlans, domain.FloorPlan{Type: fp.Type, AreaSqFt: fp.Area, Price: fp.Price})
	}
	if len(l.FloorPlans) > 0 {
		l.Specifications.AreaSqFt = l.FloorPlans[0].AreaSqFt
	}

	l.Normalize()
	if err := l.Validate(); err != nil {
		return domain.Listing{}, err
	}
	return l, nil
}
