package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func id(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

var (
	godrejID = uuid.MustParse("6f1c1f86-0d7c-4c39-9b8e-3a8a0e8e0001")
	dlfID    = uuid.MustParse("6f1c1f86-0d7c-4c39-9b8e-3a8a0e8e0002")
	sobhaID  = uuid.MustParse("6f1c1f86-0d7c-4c39-9b8e-3a8a0e8e0003")
)

func baseTime() time.Time {
	return time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
}

// sampleListings is a small market across three builders and two cities.
func sampleListings() []Listing {
	return []Listing{
		{
			ID: id(1), Name: "Godrej Aristocrat", BuilderID: godrejID, BuilderName: "Godrej Properties",
			Location:         Location{City: "Gurgaon", Area: "Sector 49", SubArea: "Golf Course Extension Road"},
			PriceRange:       PriceRange{Min: 1_85_00_000, Max: 3_20_00_000},
			PropertyType:     PropertyTypeResidential,
			Configurations:   []string{"3 BHK", "4 BHK", "5 BHK"},
			PossessionDate:   NewDate(2026, time.December, 31),
			PossessionStatus: PossessionUnderConstruction,
			Amenities:        []string{"Swimming Pool", "Gym", "Clubhouse"},
			Featured:         true,
			Status:           StatusActive,
			Specifications:   Specifications{AreaSqFt: 3200},
			CreatedAt:        baseTime().Add(14 * 24 * time.Hour),
		},
		{
			ID: id(2), Name: "DLF Privana West", BuilderID: dlfID, BuilderName: "DLF Limited",
			Location:         Location{City: "Gurgaon", Area: "Sector 76"},
			PriceRange:       PriceRange{Min: 1_60_00_000, Max: 2_40_00_000},
			PropertyType:     PropertyTypeResidential,
			Configurations:   []string{"2 BHK", "3 BHK", "4 BHK"},
			PossessionDate:   NewDate(2027, time.June, 30),
			PossessionStatus: PossessionNewLaunch,
			Amenities:        []string{"Infinity Pool", "Gym"},
			Featured:         true,
			Status:           StatusActive,
			Specifications:   Specifications{AreaSqFt: 1650},
			CreatedAt:        baseTime().Add(30 * 24 * time.Hour),
		},
		{
			ID: id(3), Name: "Sobha City", BuilderID: sobhaID, BuilderName: "Sobha Limited",
			Location:         Location{City: "Bangalore", Area: "Thanisandra"},
			PriceRange:       PriceRange{Min: 85_00_000, Max: 1_60_00_000},
			PropertyType:     PropertyTypeResidential,
			Configurations:   []string{"2 BHK", "3 BHK"},
			PossessionDate:   NewDate(2024, time.March, 1),
			PossessionStatus: PossessionReadyToMove,
			Amenities:        []string{"swimming pool", "GYM", "Tennis Court"},
			Status:           StatusActive,
			Specifications:   Specifications{AreaSqFt: 1400},
			CreatedAt:        baseTime(),
		},
		{
			ID: id(4), Name: "DLF Corporate Greens", BuilderID: dlfID, BuilderName: "DLF Limited",
			Location:         Location{City: "Gurgaon", Area: "Sector 74A"},
			PriceRange:       PriceRange{Min: 85_00_000, Max: 5_00_00_000},
			PropertyType:     PropertyTypeCommercial,
			Configurations:   []string{"Office Space"},
			PossessionDate:   NewDate(2025, time.September, 15),
			PossessionStatus: PossessionReadyToMove,
			Amenities:        []string{"Power Backup", "Parking"},
			Status:           StatusActive,
			Specifications:   Specifications{AreaSqFt: 5000},
			CreatedAt:        baseTime().Add(30 * 24 * time.Hour),
		},
		{
			ID: id(5), Name: "Sobha Royal Pavilion", BuilderID: sobhaID, BuilderName: "Sobha Limited",
			Location:         Location{City: "Bangalore", Area: "Sarjapur Road"},
			PriceRange:       PriceRange{Min: 3_50_00_000, Max: 6_00_00_000},
			PropertyType:     PropertyTypeResidential,
			Configurations:   []string{"6 BHK"},
			PossessionDate:   NewDate(2026, time.January, 10),
			PossessionStatus: PossessionUnderConstruction,
			Amenities:        []string{"Private Pool"},
			Status:           StatusActive,
			Specifications:   Specifications{AreaSqFt: 5000},
			CreatedAt:        baseTime().Add(60 * 24 * time.Hour),
		},
	}
}

// manyListings builds n listings with repeating prices so ties are common.
func manyListings(n int) []Listing {
	out := make([]Listing, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Listing{
			ID:           id(1000 + (n - i)),
			Name:         fmt.Sprintf("Tower %d", i),
			BuilderID:    dlfID,
			BuilderName:  "DLF Limited",
			Location:     Location{City: "Pune", Area: fmt.Sprintf("Phase %d", i%4)},
			PriceRange:   PriceRange{Min: int64(50_00_000 * (1 + i%5)), Max: int64(50_00_000*(1+i%5) + 20_00_000)},
			PropertyType: PropertyTypeResidential,
			Status:       StatusActive,
			CreatedAt:    baseTime().Add(time.Duration(i%7) * time.Hour),
		})
	}
	return out
}

func ids(listings []Listing) []uuid.UUID {
	out := make([]uuid.UUID, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}
